package usecases

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarters/internal/domain/workorder"
	vo "quarters/internal/domain/workorder/valueobjects"
	"quarters/internal/shared/errors"
	"quarters/internal/shared/validation"
)

func newAttachUseCase(wo *workorder.WorkOrder) (*AttachPhotoUseCase, *mockPhotoRepository, *mockFileStorage) {
	photoRepo := &mockPhotoRepository{}
	storage := &mockFileStorage{}
	uc := NewAttachPhotoUseCase(repoWith(wo), photoRepo, storage, &mockLogger{})
	return uc, photoRepo, storage
}

func TestAttachPhoto_TenantInitialWhilePending(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _ := newAttachUseCase(wo)

	result, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Kind:        "initial",
		Caption:     "before",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, "initial", result.Kind)
	assert.Equal(t, "/uploads/work-orders/1/initial.jpg", result.URL)
}

func TestAttachPhoto_TenantLimitedToInitialKind(t *testing.T) {
	// Progress and completion photos document staff's work; the owning
	// tenant may only contribute initial photos.
	for _, kind := range []string{"in_progress", "completion"} {
		wo := orderAt(t, vo.StatusPending)
		uc, _, storage := newAttachUseCase(wo)

		_, err := uc.Execute(context.Background(), AttachPhotoCommand{
			Actor:       testTenant,
			WorkOrderID: 1,
			Kind:        kind,
			Content:     bytes.NewReader(jpegHeader),
		})
		require.Error(t, err, kind)
		assert.True(t, errors.IsForbiddenError(err), kind)
		assert.Empty(t, storage.Saved, kind)
	}
}

func TestAttachPhoto_TenantCannotAttachAfterTriage(t *testing.T) {
	wo := orderAt(t, vo.StatusApproved)
	uc, _, _ := newAttachUseCase(wo)

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Kind:        "initial",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAttachPhoto_StaffProgressPhoto(t *testing.T) {
	wo := orderAt(t, vo.StatusInProgress)
	uc, _, _ := newAttachUseCase(wo)

	result, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		Kind:        "in_progress",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", result.Kind)
}

func TestAttachPhoto_NonOwnerForbidden(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _ := newAttachUseCase(wo)

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testOther,
		WorkOrderID: 1,
		Kind:        "initial",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAttachPhoto_ClosedOrderRefused(t *testing.T) {
	wo := orderAt(t, vo.StatusSignedOff)
	uc, _, _ := newAttachUseCase(wo)

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testStaff,
		WorkOrderID: 1,
		Kind:        "completion",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidTransitionError(err))
}

func TestAttachPhoto_NonImageRefused(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, storage := newAttachUseCase(wo)

	var stored bool
	storage.SaveFunc = func(reader io.Reader, filename, prefix string) (string, error) {
		stored = true
		return "", nil
	}

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Kind:        "initial",
		Content:     bytes.NewReader([]byte("MZ\x90\x00")), // PE executable header
	})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedMediaError(err))
	assert.False(t, stored)
}

func TestAttachPhoto_OversizeRefused(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, _, _ := newAttachUseCase(wo)

	big := make([]byte, validation.MaxAttachmentSize+1)
	copy(big, jpegHeader)

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Kind:        "initial",
		Content:     bytes.NewReader(big),
	})
	require.Error(t, err)
	assert.True(t, errors.IsPayloadTooLargeError(err))
}

func TestAttachPhoto_FailedCreateCleansUpBlob(t *testing.T) {
	wo := orderAt(t, vo.StatusPending)
	uc, photoRepo, storage := newAttachUseCase(wo)

	photoRepo.CreateFunc = func(ctx context.Context, photo *workorder.Photo) error {
		return errors.NewInternalError("db down")
	}

	_, err := uc.Execute(context.Background(), AttachPhotoCommand{
		Actor:       testTenant,
		WorkOrderID: 1,
		Kind:        "initial",
		Content:     bytes.NewReader(jpegHeader),
	})
	require.Error(t, err)
	require.Len(t, storage.Deleted, 1)
}
