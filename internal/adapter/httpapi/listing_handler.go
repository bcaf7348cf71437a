package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/domain"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/middleware"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/usecase"
	"go.uber.org/zap"
)

const maxPhotoUploadBytes = 8 * 1024 * 1024

type createListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	PhoneNumber string  `json:"phoneNumber"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

type listingResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	ImageURL       string           `json:"imageUrl"`
	Location       string           `json:"location"`
	Price          float64          `json:"price"`
	ConvertedPrice int64            `json:"convertedPrice"`
	Currency       string           `json:"currency"`
	PhoneNumber    string           `json:"phoneNumber"`
	SellerName     string           `json:"sellerName"`
	SellerEmail    string           `json:"sellerEmail"`
	CreatedAt      time.Time        `json:"createdAt"`
	Rating         float64          `json:"rating"`
	ReviewsCount   int32            `json:"reviewsCount"`
	Reviews        []reviewResponse `json:"reviews"`
}

type listingsPageResponse struct {
	Listings []listingResponse `json:"listings"`
	Total    int64             `json:"total"`
}

func toListingResponse(l *domain.Listing, currency domain.Currency) listingResponse {
	reviews := make([]reviewResponse, 0, len(l.Reviews))
	for _, r := range l.Reviews {
		reviews = append(reviews, reviewResponse{
			ID:        r.ID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Timestamp: r.Timestamp,
		})
	}
	return listingResponse{
		ID:             l.ID,
		Title:          l.Title,
		Description:    l.Description,
		Category:       string(l.Category),
		ImageURL:       l.ImageURL,
		Location:       l.Location,
		Price:          l.Price,
		ConvertedPrice: l.ConvertedPrice(&currency),
		Currency:       currency.Code,
		PhoneNumber:    l.PhoneNumber,
		SellerName:     l.SellerName,
		SellerEmail:    l.SellerEmail,
		CreatedAt:      l.CreatedAt,
		Rating:         l.Rating,
		ReviewsCount:   l.ReviewsCount,
		Reviews:        reviews,
	}
}

func displayCurrency(r *http.Request) domain.Currency {
	return domain.CurrencyByCode(r.URL.Query().Get("currency"))
}

// HandleCreateListing creates a new ad for the authenticated seller.
func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreateListing", zap.Error(err))
		h.respondError(w, "CreateListing", domain.ErrInvalidInput)
		return
	}

	sellerEmail, _ := middleware.UserEmailFromContext(r.Context())
	sellerName, _ := middleware.UserNameFromContext(r.Context())

	listing, err := h.listings.CreateListing(r.Context(), usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Price:       req.Price,
		PhoneNumber: req.PhoneNumber,
		SellerName:  sellerName,
		SellerEmail: sellerEmail,
	})
	if err != nil {
		h.respondError(w, "CreateListing", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toListingResponse(listing, domain.DefaultCurrency))
}

// HandleGetListing returns a single listing, with prices converted to
// the requested display currency.
func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		h.respondError(w, "GetListing", err)
		return
	}
	h.respondJSON(w, http.StatusOK, toListingResponse(listing, displayCurrency(r)))
}

// HandleSearchListings queries listings by the filter in the query
// string.
func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Query:       q.Get("query"),
		Category:    domain.Category(q.Get("category")),
		SellerEmail: q.Get("seller_email"),
	}
	if v := q.Get("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := q.Get("page"); v != "" {
		page, _ := strconv.ParseInt(v, 10, 32)
		filter.Page = int32(page)
	}
	if v := q.Get("limit"); v != "" {
		limit, _ := strconv.ParseInt(v, 10, 32)
		filter.Limit = int32(limit)
	}

	listings, total, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		h.respondError(w, "SearchListings", err)
		return
	}

	currency := displayCurrency(r)
	page := listingsPageResponse{
		Listings: make([]listingResponse, 0, len(listings)),
		Total:    total,
	}
	for _, l := range listings {
		page.Listings = append(page.Listings, toListingResponse(l, currency))
	}
	h.respondJSON(w, http.StatusOK, page)
}

type addReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

// HandleAddReview appends a review authored by the authenticated user.
func (h *Handler) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req addReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for AddReview", zap.String("listing_id", id), zap.Error(err))
		h.respondError(w, "AddReview", domain.ErrInvalidInput)
		return
	}

	userName, ok := middleware.UserNameFromContext(r.Context())
	if !ok {
		email, _ := middleware.UserEmailFromContext(r.Context())
		userName = email
	}

	listing, err := h.listings.AddReview(r.Context(), id, userName, req.Comment, req.Rating)
	if err != nil {
		h.respondError(w, "AddReview", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toListingResponse(listing, displayCurrency(r)))
}

// HandleAttachPhoto uploads a listing photo from a multipart form and
// sets it as the listing image.
func (h *Handler) HandleAttachPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	requesterEmail, _ := middleware.UserEmailFromContext(r.Context())

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		h.respondError(w, "AttachPhoto", domain.ErrInvalidInput)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.respondError(w, "AttachPhoto", domain.ErrInvalidInput)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, "AttachPhoto", domain.ErrInvalidInput)
		return
	}

	imageURL, err := h.photos.AttachPhoto(r.Context(), id, requesterEmail, header.Filename, data)
	if err != nil {
		h.respondError(w, "AttachPhoto", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

// HandleListCurrencies returns the display currency reference table.
func (h *Handler) HandleListCurrencies(w http.ResponseWriter, r *http.Request) {
	type currencyResponse struct {
		Code   string  `json:"code"`
		Symbol string  `json:"symbol"`
		Rate   float64 `json:"rate"`
		Label  string  `json:"label"`
	}
	out := make([]currencyResponse, 0, len(domain.Currencies))
	for _, c := range domain.Currencies {
		out = append(out, currencyResponse{Code: c.Code, Symbol: c.Symbol, Rate: c.Rate, Label: c.Label})
	}
	h.respondJSON(w, http.StatusOK, out)
}
