package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/validation"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const (
	imageField = "listing[image]"

	// multipart bodies may carry a few form fields next to the image
	maxUploadBody   = services.MaxImageSize + 1<<20
	multipartMemory = 8 << 20
)

// ListingService defines the listing operations used by the handler.
type ListingService interface {
	List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error)
	Get(ctx context.Context, id string) (*entities.Listing, error)
	GetDetail(ctx context.Context, id string) (*entities.ListingDetail, error)
	Create(ctx context.Context, ownerID string, fields services.ListingFields, upload *providers.ImageUpload) (*entities.Listing, error)
	Update(ctx context.Context, id string, fields services.ListingFields, upload *providers.ImageUpload) (*entities.Listing, error)
	Delete(ctx context.Context, id string) error
}

// ImagePreparer checks an uploaded image before it is stored.
type ImagePreparer interface {
	Prepare(filename string, body io.Reader) (*providers.ImageUpload, error)
}

// ListingHandler handles listing pages and forms
type ListingHandler struct {
	listings ListingService
	images   ImagePreparer
	renderer views.Renderer
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings ListingService, images ImagePreparer, renderer views.Renderer) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		images:   images,
		renderer: renderer,
	}
}

// IndexData is the model of the listings index view
type IndexData struct {
	Listings        []*entities.Listing `json:"allListings"`
	CurrentSearch   string              `json:"currentSearch"`
	CurrentCategory string              `json:"currentCategory"`
	Categories      []entities.Category `json:"categories"`
}

// EditData is the model of the listing edit view
type EditData struct {
	Listing          *entities.Listing `json:"listing"`
	OriginalImageURL string            `json:"originalImageUrl"`
}

// Index handles GET /listings
func (h *ListingHandler) Index(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	listings, err := h.listings.List(r.Context(), entities.ListingFilter{
		Country:  search,
		Category: entities.Category(category),
	})
	if err != nil {
		respondWithError(h.renderer, w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, views.ListingsIndex, IndexData{
		Listings:        listings,
		CurrentSearch:   search,
		CurrentCategory: category,
		Categories:      entities.Categories,
	})
}

// New handles GET /listings/new
func (h *ListingHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, views.ListingsNew, nil)
}

// Show handles GET /listings/{id}
func (h *ListingHandler) Show(w http.ResponseWriter, r *http.Request) {
	detail, err := h.listings.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgListingNotFound, "/listings")
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, views.ListingsShow, detail)
}

// Create handles POST /listings
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	upload, err := h.readForm(w, r)
	if err != nil {
		h.formError(w, r, err, "/listings/new")
		return
	}

	fields, err := validation.ParseListing(r.PostForm)
	if err != nil {
		respondWithError(h.renderer, w, r, err)
		return
	}

	sess := session.FromContext(r.Context())
	if _, err := h.listings.Create(r.Context(), sess.UserID, fields, upload); err != nil {
		h.formError(w, r, err, "/listings/new")
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "New Listing Created!", "/listings")
}

// Edit handles GET /listings/{id}/edit
func (h *ListingHandler) Edit(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgListingNotFound, "/listings")
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, views.ListingsEdit, EditData{
		Listing:          listing,
		OriginalImageURL: listing.Image.ThumbnailURL(),
	})
}

// Update handles PUT /listings/{id}
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	editURL := "/listings/" + id + "/edit"

	upload, err := h.readForm(w, r)
	if err != nil {
		h.formError(w, r, err, editURL)
		return
	}

	fields, err := validation.ParseListing(r.PostForm)
	if err != nil {
		respondWithError(h.renderer, w, r, err)
		return
	}

	if _, err := h.listings.Update(r.Context(), id, fields, upload); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgListingNotFound, "/listings")
			return
		}
		h.formError(w, r, err, editURL)
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "Listing Updated!", "/listings/"+id)
}

// Delete handles DELETE /listings/{id}
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.Delete(r.Context(), r.PathValue("id")); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			flashError(w, r, err, services.MsgListingNotFound, "/listings")
			return
		}
		respondWithError(h.renderer, w, r, err)
		return
	}

	flashRedirect(w, r, entities.FlashSuccess, "Listing and image deleted!", "/listings")
}

// readForm parses the request body and checks the optional image. A nil
// upload means no file was sent.
func (h *ListingHandler) readForm(w http.ResponseWriter, r *http.Request) (*providers.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewFileConstraintError(services.MsgImageTooLarge)
		}
		return nil, apperrors.NewValidationError("Invalid form data")
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File[imageField]) == 0 {
		return nil, nil
	}

	header := r.MultipartForm.File[imageField][0]
	if header.Filename == "" && header.Size == 0 {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	return h.images.Prepare(header.Filename, file)
}

// formError sends upload problems back to the form and renders the rest
func (h *ListingHandler) formError(w http.ResponseWriter, r *http.Request, err error, formURL string) {
	if apperrors.Is(err, apperrors.ErrorTypeFileConstraint) {
		flashError(w, r, err, services.MsgImageType, formURL)
		return
	}
	respondWithError(h.renderer, w, r, err)
}
