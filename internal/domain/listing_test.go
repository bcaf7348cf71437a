package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_ConvertedPrice(t *testing.T) {
	listing := &Listing{Price: 1000}

	sar := CurrencyByCode("SAR")
	assert.Equal(t, int64(3750), listing.ConvertedPrice(&sar))

	eur := CurrencyByCode("EUR")
	assert.Equal(t, int64(920), listing.ConvertedPrice(&eur))

	// Nil currency falls back to the unit rate, not zero.
	assert.Equal(t, int64(1000), listing.ConvertedPrice(nil))

	// A zero rate is treated as unit rate too.
	broken := &Currency{Code: "XXX", Rate: 0}
	assert.Equal(t, int64(1000), listing.ConvertedPrice(broken))
}

func TestListing_ConvertedPriceRounds(t *testing.T) {
	listing := &Listing{Price: 10.5}
	usd := CurrencyByCode("USD")
	assert.Equal(t, int64(11), listing.ConvertedPrice(&usd))
}

func TestCurrencyByCode_UnknownFallsBack(t *testing.T) {
	c := CurrencyByCode("JPY")
	assert.Equal(t, DefaultCurrency, c)

	c = CurrencyByCode("")
	assert.Equal(t, DefaultCurrency, c)
}

func TestListing_AppendReview(t *testing.T) {
	listing := &Listing{}
	assert.Equal(t, float64(0), listing.Rating)
	assert.Equal(t, int32(0), listing.ReviewsCount)

	first, err := NewReview("alice", "great seller", 5)
	require.NoError(t, err)
	listing.AppendReview(*first)

	assert.Equal(t, int32(1), listing.ReviewsCount)
	assert.Equal(t, float64(5), listing.Rating)

	second, err := NewReview("bob", "okay", 2)
	require.NoError(t, err)
	listing.AppendReview(*second)

	assert.Equal(t, int32(2), listing.ReviewsCount)
	assert.InDelta(t, 3.5, listing.Rating, 0.0001)
	// Insertion order is preserved.
	assert.Equal(t, "alice", listing.Reviews[0].UserName)
	assert.Equal(t, "bob", listing.Reviews[1].UserName)
}

func TestNewReview_Validation(t *testing.T) {
	_, err := NewReview("", "comment", 3)
	assert.Error(t, err)

	_, err = NewReview("alice", "comment", 0)
	assert.Error(t, err)

	_, err = NewReview("alice", "comment", 6)
	assert.Error(t, err)

	review, err := NewReview("alice", "", 1)
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.False(t, review.Timestamp.IsZero())
}

func TestListing_IsOwner(t *testing.T) {
	listing := &Listing{SellerEmail: "seller@example.com"}

	assert.True(t, listing.IsOwner("seller@example.com"))
	assert.False(t, listing.IsOwner("other@example.com"))
	// Comparison is exact: no case folding.
	assert.False(t, listing.IsOwner("Seller@example.com"))
	// Empty on either side never matches.
	assert.False(t, listing.IsOwner(""))
	assert.False(t, (&Listing{}).IsOwner("seller@example.com"))
}

func TestListing_CanDelete(t *testing.T) {
	listing := &Listing{SellerEmail: "seller@example.com"}

	assert.True(t, listing.CanDelete("seller@example.com", true))
	// The context must opt in even for the owner.
	assert.False(t, listing.CanDelete("seller@example.com", false))
	assert.False(t, listing.CanDelete("other@example.com", true))
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, Category("Cars").IsValid())
	assert.True(t, CategoryRealEstate.IsValid())
	assert.False(t, Category("Boats").IsValid())
	assert.False(t, Category("").IsValid())
}
