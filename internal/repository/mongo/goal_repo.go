package mongo

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const goalCollectionName = "goals"

// mongoGoalRepository implements repository.GoalRepository
type mongoGoalRepository struct {
	collection *mongo.Collection
	progress   *mongo.Collection // cascade target on Delete
}

// NewMongoGoalRepository creates a new Goal repository backed by MongoDB.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
		progress:   db.Collection(progressCollectionName),
	}
}

// Create inserts a new goal. ID and timestamps are assigned by the service layer.
func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" || goal.OwnerID == "" || goal.Name == "" {
		return errors.New("goal requires id, owner and name")
	}
	if goal.LinkedExerciseIDs == nil {
		goal.LinkedExerciseIDs = []string{}
	}
	_, err := r.collection.InsertOne(ctx, goal)
	return err
}

// GetByID retrieves a single goal of the owner by its ID.
func (r *mongoGoalRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// List retrieves all goals of the owner, newest first.
func (r *mongoGoalRepository) List(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

// ListActiveAutoTrack retrieves the owner's goals that receive workout credit automatically.
func (r *mongoGoalRepository) ListActiveAutoTrack(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID, "isActive": true, "autoTrack": true})
}

func (r *mongoGoalRepository) find(ctx context.Context, filter bson.M) ([]domain.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// Update replaces the editable fields of a goal.
func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" {
		return errors.New("goal ID is required for update")
	}
	linked := goal.LinkedExerciseIDs
	if linked == nil {
		linked = []string{}
	}

	updateDoc := bson.M{
		"$set": bson.M{
			"name":              goal.Name,
			"description":       goal.Description,
			"linkedExerciseIds": linked,
			"metric":            goal.Metric,
			"targetValue":       goal.TargetValue,
			"targetUnit":        goal.TargetUnit,
			"frequency":         goal.Frequency,
			"startDate":         goal.StartDate,
			"endDate":           goal.EndDate,
			"isActive":          goal.IsActive,
			"autoTrack":         goal.AutoTrack,
			"updatedAt":         goal.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": goal.ID, "ownerId": goal.OwnerID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the progress records of the goal and then the goal itself.
// A failed progress delete leaves the goal in place so the call can be retried.
func (r *mongoGoalRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}

	if _, err := r.progress.DeleteMany(ctx, bson.M{"goalId": id}); err != nil {
		return fmt.Errorf("%w: progress of goal %s: %v", repository.ErrDeleteFailed, id, err)
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureGoalIndexes creates necessary indexes. Call during startup.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Workout processing scans the caller's active auto-track goals
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "isActive", Value: 1}, {Key: "autoTrack", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
