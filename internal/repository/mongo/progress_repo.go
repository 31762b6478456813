package mongo

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "goal_progress"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new GoalProgress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Increment atomically upserts the (goalId, periodStart) document. The update is an
// aggregation pipeline so the new total and the completion flag are computed server side
// from the stored value.
func (r *mongoProgressRepository) Increment(ctx context.Context, inc repository.ProgressIncrement) (*domain.GoalProgress, error) {
	if inc.GoalID == "" {
		return nil, errors.New("goal ID is required for progress")
	}

	filter := bson.D{{Key: "goalId", Value: inc.GoalID}, {Key: "periodStart", Value: inc.PeriodStart}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "periodEnd", Value: inc.PeriodEnd},
			{Key: "currentValue", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$currentValue", 0}}},
				inc.Delta,
			}}}},
			{Key: "updatedAt", Value: inc.UpdatedAt},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "isCompleted", Value: bson.D{{Key: "$gte", Value: bson.A{"$currentValue", inc.Target}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var progress domain.GoalProgress
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress)
	if mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on the unique index; the loser retries as a plain update.
		err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress)
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetForPeriod retrieves the progress of one goal period.
func (r *mongoProgressRepository) GetForPeriod(ctx context.Context, goalID string, periodStart time.Time) (*domain.GoalProgress, error) {
	var progress domain.GoalProgress
	filter := bson.M{"goalId": goalID, "periodStart": periodStart}
	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// ListByGoal retrieves all progress records of a goal, newest period first.
func (r *mongoProgressRepository) ListByGoal(ctx context.Context, goalID string) ([]domain.GoalProgress, error) {
	return r.find(ctx, bson.M{"goalId": goalID})
}

// ListCompleted retrieves the completed progress records of a goal, newest period first.
func (r *mongoProgressRepository) ListCompleted(ctx context.Context, goalID string) ([]domain.GoalProgress, error) {
	return r.find(ctx, bson.M{"goalId": goalID, "isCompleted": true})
}

func (r *mongoProgressRepository) find(ctx context.Context, filter bson.M) ([]domain.GoalProgress, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "periodStart", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.GoalProgress{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureProgressIndexes creates necessary indexes. The unique index is what makes
// concurrent upserts of the same period collapse into one document.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "goalId", Value: 1}, {Key: "periodStart", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Streak lookups: completed periods of a goal, newest first
			Keys:    bson.D{{Key: "goalId", Value: 1}, {Key: "isCompleted", Value: 1}, {Key: "periodStart", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
