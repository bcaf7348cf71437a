package usecase

import (
	"context"
	"testing"

	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(int64), args.Error(2)
}
func (m *MockListingRepository) CountRecentBySeller(ctx context.Context, sellerEmail string, windowHours int) (int64, error) {
	args := m.Called(ctx, sellerEmail, windowHours)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendListingDeletedEmail(toEmail, listingTitle string) error {
	args := m.Called(toEmail, listingTitle)
	return args.Error(0)
}

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:       "iPhone 13",
		Description: "Lightly used",
		Category:    domain.CategoryPhones,
		Location:    "Cairo",
		Price:       500,
		PhoneNumber: "01012345678",
		SellerName:  "Ann",
		SellerEmail: "ann@example.com",
	}
}

func newListingUC(repo *MockListingRepository, events *MockEventPublisher, mail *MockMailer) *ListingUsecase {
	var pub EventPublisher
	if events != nil {
		pub = events
	}
	uc := NewListingUsecase(repo, nil, pub, nil, metrics.NewMetricsManager("test"), logger.NewNop())
	if mail != nil {
		uc.mail = mail
	}
	return uc
}

func TestListingUsecase_CreateListing(t *testing.T) {
	repo := new(MockListingRepository)
	events := new(MockEventPublisher)
	repo.On("CountRecentBySeller", mock.Anything, "ann@example.com", postingWindowHours).Return(int64(1), nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)
	events.On("Publish", mock.Anything, subjectListingCreated, mock.Anything).Return(nil)

	uc := newListingUC(repo, events, nil)
	listing, err := uc.CreateListing(context.Background(), validCreateInput())

	require.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.False(t, listing.CreatedAt.IsZero())
	assert.Equal(t, "ann@example.com", listing.SellerEmail)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestListingUsecase_CreateListingValidation(t *testing.T) {
	uc := newListingUC(new(MockListingRepository), nil, nil)

	cases := []struct {
		name   string
		mutate func(*CreateListingInput)
	}{
		{"empty title", func(in *CreateListingInput) { in.Title = "  " }},
		{"negative price", func(in *CreateListingInput) { in.Price = -1 }},
		{"bad category", func(in *CreateListingInput) { in.Category = "Boats" }},
		{"no seller", func(in *CreateListingInput) { in.SellerEmail = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := uc.CreateListing(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestListingUsecase_CreateListingPostingLimit(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("CountRecentBySeller", mock.Anything, "ann@example.com", postingWindowHours).Return(int64(2), nil)

	uc := newListingUC(repo, nil, nil)
	_, err := uc.CreateListing(context.Background(), validCreateInput())

	assert.ErrorIs(t, err, domain.ErrPostingLimitExceeded)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListingUsecase_DeleteListingRequiresOwnership(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "l-1").Return(&domain.Listing{
		ID: "l-1", Title: "iPhone 13", SellerEmail: "ann@example.com",
	}, nil)

	uc := newListingUC(repo, nil, nil)
	err := uc.DeleteListing(context.Background(), "l-1", "mallory@example.com")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListingUsecase_DeleteListingByOwner(t *testing.T) {
	repo := new(MockListingRepository)
	events := new(MockEventPublisher)
	mail := new(MockMailer)
	repo.On("FindByID", mock.Anything, "l-1").Return(&domain.Listing{
		ID: "l-1", Title: "iPhone 13", SellerEmail: "ann@example.com",
	}, nil)
	repo.On("Delete", mock.Anything, "l-1").Return(nil)
	events.On("Publish", mock.Anything, subjectListingDeleted, mock.Anything).Return(nil)
	mail.On("SendListingDeletedEmail", "ann@example.com", "iPhone 13").Return(nil)

	uc := newListingUC(repo, events, mail)
	err := uc.DeleteListing(context.Background(), "l-1", "ann@example.com")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestListingUsecase_DeleteListingNotFound(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrListingNotFound)

	uc := newListingUC(repo, nil, nil)
	err := uc.DeleteListing(context.Background(), "missing", "ann@example.com")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingUsecase_AddReviewUpdatesAggregate(t *testing.T) {
	repo := new(MockListingRepository)
	events := new(MockEventPublisher)
	repo.On("FindByID", mock.Anything, "l-1").Return(&domain.Listing{ID: "l-1", Title: "iPhone 13"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)
	events.On("Publish", mock.Anything, subjectReviewCreated, mock.Anything).Return(nil)

	uc := newListingUC(repo, events, nil)
	listing, err := uc.AddReview(context.Background(), "l-1", "bob", "great", 5)

	require.NoError(t, err)
	assert.Equal(t, int32(1), listing.ReviewsCount)
	assert.Equal(t, float64(5), listing.Rating)
	repo.AssertExpectations(t)
}

func TestListingUsecase_AddReviewRejectsBadRating(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo, nil, nil)

	_, err := uc.AddReview(context.Background(), "l-1", "bob", "meh", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListingUsecase_SearchRejectsUnknownCategory(t *testing.T) {
	uc := newListingUC(new(MockListingRepository), nil, nil)
	_, _, err := uc.SearchListings(context.Background(), domain.Filter{Category: "Boats"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
