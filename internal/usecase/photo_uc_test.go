package usecase

import (
	"context"
	"testing"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	args := m.Called(ctx, originalFileName, data)
	return args.String(0), args.Error(1)
}

func TestPhotoUsecase_AttachPhoto(t *testing.T) {
	repo := new(MockListingRepository)
	storage := new(MockImageStorage)
	data := []byte{0xFF, 0xD8, 0xFF}

	repo.On("FindByID", mock.Anything, "l-1").Return(&domain.Listing{
		ID: "l-1", SellerEmail: "ann@example.com",
	}, nil)
	storage.On("Upload", mock.Anything, "phone.jpg", data).Return("https://cdn.example.com/images/x.jpg", nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.ImageURL == "https://cdn.example.com/images/x.jpg"
	})).Return(nil)

	uc := NewPhotoUsecase(repo, storage, nil, logger.NewNop())
	url, err := uc.AttachPhoto(context.Background(), "l-1", "ann@example.com", "phone.jpg", data)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/x.jpg", url)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestPhotoUsecase_AttachPhotoForbiddenForNonOwner(t *testing.T) {
	repo := new(MockListingRepository)
	storage := new(MockImageStorage)
	repo.On("FindByID", mock.Anything, "l-1").Return(&domain.Listing{
		ID: "l-1", SellerEmail: "ann@example.com",
	}, nil)

	uc := NewPhotoUsecase(repo, storage, nil, logger.NewNop())
	_, err := uc.AttachPhoto(context.Background(), "l-1", "mallory@example.com", "phone.jpg", []byte{1})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestPhotoUsecase_AttachPhotoValidation(t *testing.T) {
	uc := NewPhotoUsecase(new(MockListingRepository), new(MockImageStorage), nil, logger.NewNop())

	_, err := uc.AttachPhoto(context.Background(), "l-1", "ann@example.com", "phone.jpg", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AttachPhoto(context.Background(), "l-1", "ann@example.com", "notes.txt", []byte{1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	oversized := make([]byte, maxImageSizeBytes+1)
	_, err = uc.AttachPhoto(context.Background(), "l-1", "ann@example.com", "phone.png", oversized)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
