package adminform

import (
	"context"
	"errors"
	"io"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	"github.com/fieldhouse/sports-cms-api/internal/service"
)

// ErrNoImages rejects a save that would leave the academy without images.
var ErrNoImages = errors.New("academy must keep at least one image")

// ErrSlotsBusy rejects a save while an upload or delete is still in flight.
var ErrSlotsBusy = errors.New("an image operation is still in progress")

type academyStore interface {
	Get(ctx context.Context, id string) (*models.AcademyDetail, error)
	Update(ctx context.Context, req service.UpdateAcademyRequest) (*models.AcademyDetail, error)
}

type imageGateway interface {
	Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (string, error)
	RemoveByURL(ctx context.Context, url string) error
}

// AcademyForm drives the admin edit flow for one academy: scalar fields, a
// dynamic set of image slots, and a read-only view of the batches. Image
// uploads and deletes hit storage immediately; everything else persists on
// Save. Save never touches the batch list.
type AcademyForm struct {
	store  academyStore
	images imageGateway
	folder string

	ID          string
	Name        string
	Location    string
	Description string
	IsActive    bool

	Slots   *SlotSet
	Batches []models.Batch
}

// NewAcademyForm constructs an unloaded form.
func NewAcademyForm(store academyStore, images imageGateway, folder string) *AcademyForm {
	return &AcademyForm{store: store, images: images, folder: folder}
}

// Load populates the form from the stored academy.
func (f *AcademyForm) Load(ctx context.Context, id string) error {
	detail, err := f.store.Get(ctx, id)
	if err != nil {
		return err
	}
	f.ID = detail.ID
	f.Name = detail.Name
	f.Location = detail.Location
	f.Description = detail.Description
	f.IsActive = detail.IsActive
	f.Slots = NewSlotSet(detail.Images)
	f.Batches = detail.Batches
	return nil
}

// AddSlot appends an empty image slot and returns its index.
func (f *AcademyForm) AddSlot() int {
	return f.Slots.Add()
}

// UploadImage stores a file for one slot. The slot holds the new URL on
// success and returns to empty on failure; other slots are untouched.
func (f *AcademyForm) UploadImage(ctx context.Context, index int, filename, contentType string, size int64, body io.Reader) error {
	if err := f.Slots.BeginUpload(index); err != nil {
		return err
	}
	url, err := f.images.Upload(ctx, f.folder, filename, contentType, size, body)
	if err != nil {
		if resetErr := f.Slots.FailUpload(index); resetErr != nil {
			return resetErr
		}
		return err
	}
	return f.Slots.CompleteUpload(index, url)
}

// RemoveImage deletes one slot's stored image. The slot stays present if the
// delete fails.
func (f *AcademyForm) RemoveImage(ctx context.Context, index int) error {
	slot, err := f.Slots.Get(index)
	if err != nil {
		return err
	}
	if err := f.Slots.BeginDelete(index); err != nil {
		return err
	}
	if err := f.images.RemoveByURL(ctx, slot.URL); err != nil {
		if resetErr := f.Slots.FailDelete(index); resetErr != nil {
			return resetErr
		}
		return err
	}
	return f.Slots.CompleteDelete(index)
}

// Save persists the scalar fields and the current image URLs. The request
// deliberately omits the batches array so the stored batch list survives.
func (f *AcademyForm) Save(ctx context.Context) (*models.AcademyDetail, error) {
	if f.Slots.Busy() {
		return nil, ErrSlotsBusy
	}
	urls := f.Slots.URLs()
	if len(urls) == 0 {
		return nil, ErrNoImages
	}

	isActive := f.IsActive
	detail, err := f.store.Update(ctx, service.UpdateAcademyRequest{
		ID:          f.ID,
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		Images:      urls,
		IsActive:    &isActive,
	})
	if err != nil {
		return nil, err
	}
	f.Batches = detail.Batches
	return detail, nil
}
