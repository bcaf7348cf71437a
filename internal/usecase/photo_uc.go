package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"go.uber.org/zap"
)

const maxImageSizeBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// PhotoUsecase attaches images to listings through the image store.
type PhotoUsecase struct {
	repo    domain.ListingRepository
	storage ImageStorage
	cache   ListingCache
	logger  *logger.Logger
}

// NewPhotoUsecase creates a PhotoUsecase. cache may be nil.
func NewPhotoUsecase(repo domain.ListingRepository, storage ImageStorage, cache ListingCache, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{
		repo:    repo,
		storage: storage,
		cache:   cache,
		logger:  log.Named("PhotoUsecase"),
	}
}

// AttachPhoto uploads an image and sets it as the listing's photo. Only
// the listing owner may do this; the ownership check mirrors deletion.
func (uc *PhotoUsecase) AttachPhoto(ctx context.Context, listingID, requesterEmail, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image data is empty", domain.ErrInvalidInput)
	}
	if len(data) > maxImageSizeBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, maxImageSizeBytes)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, ext)
	}

	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if !listing.IsOwner(requesterEmail) {
		return "", domain.ErrForbidden
	}

	imageURL, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Image upload failed", zap.String("listing_id", listingID), zap.Error(err))
		return "", err
	}

	listing.ImageURL = imageURL
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to persist image URL", zap.String("listing_id", listingID), zap.Error(err))
		return "", err
	}
	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Cache refresh failed after photo attach", zap.String("listing_id", listingID), zap.Error(err))
		}
	}

	uc.logger.Info("Photo attached to listing", zap.String("listing_id", listingID), zap.String("image_url", imageURL))
	return imageURL, nil
}
