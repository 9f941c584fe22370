package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"daxlearn/internal/domain/entity"
	"daxlearn/internal/domain/repository"
	apperrors "daxlearn/pkg/errors"
)

const progressCollection = "progress"

type firestoreProgressRepository struct {
	client *firestore.Client
}

func NewFirestoreProgressRepository(client *firestore.Client) repository.ProgressRepository {
	return &firestoreProgressRepository{
		client: client,
	}
}

func (r *firestoreProgressRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(progressCollection).Doc(userID)
}

func (r *firestoreProgressRepository) Get(ctx context.Context, userID string) (*entity.Progress, error) {
	doc, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Progress", err)
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	var progress entity.Progress
	if err := doc.DataTo(&progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}

	return &progress, nil
}

func (r *firestoreProgressRepository) GetOrCreate(ctx context.Context, userID string) (*entity.Progress, error) {
	progress, err := r.Get(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !apperrors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	progress = entity.NewProgress(userID, time.Now())

	// Create fails with AlreadyExists if a concurrent first access won
	// the race; in that case the stored aggregate is authoritative.
	if _, err := r.doc(userID).Create(ctx, progress); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return r.Get(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create progress: %w", err)
	}

	return progress, nil
}

// Mutate runs the update inside a Firestore transaction. The client
// retries aborted transactions a bounded number of times; exhaustion
// surfaces as a conflict the caller may retry as a whole.
func (r *firestoreProgressRepository) Mutate(ctx context.Context, userID string, mutate func(*entity.Progress) error) (*entity.Progress, error) {
	docRef := r.doc(userID)

	var committed *entity.Progress
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		progress := entity.NewProgress(userID, time.Now())

		doc, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil {
			if err := doc.DataTo(progress); err != nil {
				return fmt.Errorf("failed to decode progress: %w", err)
			}
		}

		if err := mutate(progress); err != nil {
			return err
		}

		committed = progress
		return tx.Set(docRef, progress)
	})

	if err != nil {
		if status.Code(err) == codes.Aborted {
			return nil, apperrors.Conflict("progress update contention, retry the operation", err)
		}
		return nil, err
	}

	return committed, nil
}

func (r *firestoreProgressRepository) ListTop(ctx context.Context, limit int) ([]entity.Progress, error) {
	iter := r.client.Collection(progressCollection).
		Where("points", ">", 0).
		OrderBy("points", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var results []entity.Progress
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
		}

		var progress entity.Progress
		if err := doc.DataTo(&progress); err != nil {
			return nil, fmt.Errorf("failed to decode progress: %w", err)
		}
		results = append(results, progress)
	}

	return results, nil
}
