package adminform

import (
	"context"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	"github.com/fieldhouse/sports-cms-api/internal/service"
)

type batchStore interface {
	Create(ctx context.Context, req service.CreateBatchRequest) (*models.Batch, error)
	Delete(ctx context.Context, batchID string) error
}

// BatchForm drives the admin batch list for one academy. Adds and deletes
// persist immediately, independent of the academy form's Save.
type BatchForm struct {
	store     batchStore
	academyID string

	Batches []models.Batch
}

// NewBatchForm constructs a batch form seeded with the current batch list.
func NewBatchForm(store batchStore, academyID string, batches []models.Batch) *BatchForm {
	return &BatchForm{store: store, academyID: academyID, Batches: batches}
}

// Add persists a new batch for the academy and appends it to the local list.
func (f *BatchForm) Add(ctx context.Context, input service.BatchInput) (*models.Batch, error) {
	batch, err := f.store.Create(ctx, service.CreateBatchRequest{
		SportsAcademyID: f.academyID,
		Name:            input.Name,
		Sport:           input.Sport,
		HeadCoach:       input.HeadCoach,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Description:     input.Description,
	})
	if err != nil {
		return nil, err
	}
	f.Batches = append(f.Batches, *batch)
	return batch, nil
}

// Delete removes a batch and drops it from the local list.
func (f *BatchForm) Delete(ctx context.Context, batchID string) error {
	if err := f.store.Delete(ctx, batchID); err != nil {
		return err
	}
	kept := f.Batches[:0]
	for _, batch := range f.Batches {
		if batch.ID != batchID {
			kept = append(kept, batch)
		}
	}
	f.Batches = kept
	return nil
}
