package service

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/export_service.go -package=mocks

const exportContentType = "application/json"

// GoalExport is the document written to object storage.
type GoalExport struct {
	ExportID   string                  `json:"exportId"`
	ExportedAt time.Time               `json:"exportedAt"`
	Goal       domain.GoalWithProgress `json:"goal"`
	History    []domain.GoalProgress   `json:"history"`
}

type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ExportService interface {
	// ExportGoalHistory uploads the owner's goal with its full progress history and returns a download link.
	ExportGoalHistory(ctx context.Context, ownerID, goalID string) (*ExportResult, error)
}

type exportService struct {
	goals       GoalService
	fileStorage storage.FileStorage
	ids         IDGenerator
	clock       Clock
}

func NewExportService(goals GoalService, fileStorage storage.FileStorage, ids IDGenerator, clock Clock) ExportService {
	return &exportService{
		goals:       goals,
		fileStorage: fileStorage,
		ids:         ids,
		clock:       clock,
	}
}

func exportObjectKey(goalID, exportID string) string {
	return fmt.Sprintf("exports/%s/%s.json", goalID, exportID)
}

func (s *exportService) ExportGoalHistory(ctx context.Context, ownerID, goalID string) (*ExportResult, error) {
	view, err := s.goals.GetGoal(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	history, err := s.goals.ProgressHistory(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	doc := GoalExport{
		ExportID:   s.ids.NewID(),
		ExportedAt: now,
		Goal:       *view,
		History:    history,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := exportObjectKey(goalID, doc.ExportID)
	if err := s.fileStorage.PutObject(ctx, key, exportContentType, bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("upload export %s: %w", key, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		// An export without a download link is not kept.
		if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
			log.WithField("key", key).WithError(delErr).Warn("failed to remove unreachable export")
		}
		return nil, fmt.Errorf("presign export %s: %w", key, err)
	}

	log.WithFields(log.Fields{"goal_id": goalID, "key": key, "records": len(history)}).Info("goal history exported")
	return &ExportResult{
		ObjectKey:   key,
		DownloadURL: url,
		ExpiresAt:   now.Add(storage.DefaultPresignedURLExpiry),
	}, nil
}
