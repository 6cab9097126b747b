package http

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"homefind/internal/entity"
	"homefind/internal/search"
	"homefind/internal/usecase"
	"homefind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyUseCase usecase.PropertyUseCase
	searchUseCase   usecase.SearchUseCase
	logger          *logger.Logger
}

func NewPropertyHandler(propertyUseCase usecase.PropertyUseCase, searchUseCase usecase.SearchUseCase, logger *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyUseCase: propertyUseCase,
		searchUseCase:   searchUseCase,
		logger:          logger,
	}
}

type ListingRequest struct {
	Title        string   `form:"title" binding:"required"`
	Description  string   `form:"description" binding:"required"`
	PropertyType string   `form:"property_type" binding:"required"`
	ListingType  string   `form:"listing_type" binding:"required"`
	Address      string   `form:"address" binding:"required"`
	City         string   `form:"city" binding:"required"`
	State        string   `form:"state" binding:"required"`
	LGA          string   `form:"lga" binding:"required"`
	Landmark     string   `form:"landmark"`
	Price        float64  `form:"price" binding:"required"`
	Bedrooms     *int     `form:"bedrooms"`
	Bathrooms    *int     `form:"bathrooms"`
	Toilets      *int     `form:"toilets"`
	SquareMeters *float64 `form:"square_meters"`
	PlotSize     string   `form:"plot_size"`
	Features     []string `form:"features"`
	VideoURL     string   `form:"video_url"`
	Documents    string   `form:"documents"`
}

func (r ListingRequest) toInput() usecase.ListingInput {
	return usecase.ListingInput{
		Title:        r.Title,
		Description:  r.Description,
		PropertyType: entity.PropertyType(r.PropertyType),
		ListingType:  entity.ListingType(r.ListingType),
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		LGA:          r.LGA,
		Landmark:     r.Landmark,
		Price:        r.Price,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Toilets:      r.Toilets,
		SquareMeters: r.SquareMeters,
		PlotSize:     r.PlotSize,
		Features:     r.Features,
		VideoURL:     r.VideoURL,
	}
}

func parseDocuments(raw string) ([]entity.OwnershipDocument, error) {
	if raw == "" {
		return nil, nil
	}
	var documents []entity.OwnershipDocument
	if err := json.Unmarshal([]byte(raw), &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// openUploads converts multipart file headers into image uploads. The
// returned closer must be called after the use case is done reading.
func openUploads(files []*multipart.FileHeader, orders []int, captions []string) ([]usecase.ImageUpload, func(), error) {
	uploads := make([]usecase.ImageUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, file)

		upload := usecase.ImageUpload{
			Reader:       file,
			FileName:     header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			DisplayOrder: i,
		}
		if i < len(orders) {
			upload.DisplayOrder = orders[i]
		}
		if i < len(captions) {
			upload.Caption = captions[i]
		}
		uploads = append(uploads, upload)
	}

	return uploads, closeAll, nil
}

// CreateListing godoc
// @Summary      Create a listing
// @Description  Create a property listing with images and ownership documents. The listing starts in pending_verification and is hidden from public search until an admin approves it.
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Listing title"
// @Param        description formData string true "Listing description"
// @Param        property_type formData string true "Property type" Enums(house, apartment, land, commercial, shop, office, warehouse, event_center, shortlet)
// @Param        listing_type formData string true "Listing type" Enums(rent, sale, lease, shortlet)
// @Param        address formData string true "Street address"
// @Param        city formData string true "City"
// @Param        state formData string true "State"
// @Param        lga formData string true "Local government area"
// @Param        price formData number true "Price in naira"
// @Param        documents formData string true "Ownership documents as a JSON array"
// @Param        images formData file true "Image files, first is the main image"
// @Success      201  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /listings [post]
func (h *PropertyHandler) CreateListing(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ListingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	documents, err := parseDocuments(req.Documents)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documents must be a JSON array"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image file is required"})
		return
	}

	uploads, closeFiles, err := openUploads(files, nil, form.Value["captions"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image files"})
		return
	}
	defer closeFiles()

	listing, err := h.propertyUseCase.CreateListing(c.Request.Context(), userID, req.toInput(), uploads, documents)
	if err != nil {
		h.logger.Error("Failed to create listing: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// GetListing godoc
// @Summary      Get listing by ID
// @Description  Get listing details and count the view
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200  {object}  entity.Property
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [get]
func (h *PropertyHandler) GetListing(c *gin.Context) {
	listing, err := h.propertyUseCase.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SearchListings godoc
// @Summary      Search listings
// @Description  Search verified listings with filters and ranked ordering. Authenticated owners also see their own pending and rejected listings.
// @Tags         listings
// @Produce      json
// @Param        q query string false "Free-text query"
// @Param        state query string false "State filter"
// @Param        city query string false "City filter"
// @Param        property_type query string false "Property type filter"
// @Param        listing_type query string false "Listing type filter"
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        min_bedrooms query int false "Minimum bedrooms"
// @Param        sort query string false "Sort mode" Enums(newest, oldest, price_low, price_high, most_viewed, relevance)
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      504  {object}  map[string]string
// @Router       /listings [get]
func (h *PropertyHandler) SearchListings(c *gin.Context) {
	sort, err := search.ParseSortMode(c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	params := search.FilterParams{
		Query:        c.Query("q"),
		State:        c.Query("state"),
		City:         c.Query("city"),
		PropertyType: entity.PropertyType(c.Query("property_type")),
		ListingType:  entity.ListingType(c.Query("listing_type")),
		Sort:         sort,
		Limit:        parseIntQuery(c, "limit", 20, 100),
		Offset:       parseIntQuery(c, "offset", 0, 0),
		OwnerID:      c.GetString("user_id"),
	}

	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &price
		}
	}
	if v := c.Query("min_bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.MinBedrooms = &n
		}
	}

	listings, err := h.searchUseCase.Search(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Search failed: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings), "offset": params.Offset})
}

// UpdateListing godoc
// @Summary      Update listing
// @Description  Update listing details. Only the owner or an admin can update a listing.
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id} [put]
func (h *PropertyHandler) UpdateListing(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ListingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.propertyUseCase.UpdateListing(c.Request.Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		h.logger.Error("Failed to update listing: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ReplaceImages godoc
// @Summary      Replace listing images
// @Description  Replace the full image set of a listing. Display orders must be unique; the image with order 0 becomes the main image.
// @Tags         listings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        images formData file true "New image files"
// @Param        display_orders formData string false "JSON array of display orders matching the files"
// @Success      200  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id}/images [put]
func (h *PropertyHandler) ReplaceImages(c *gin.Context) {
	userID := c.GetString("user_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image file is required"})
		return
	}

	var orders []int
	if raw := c.PostForm("display_orders"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &orders); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_orders must be a JSON array of integers"})
			return
		}
		if len(orders) != len(files) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_orders must match the number of image files"})
			return
		}
	}

	uploads, closeFiles, err := openUploads(files, orders, form.Value["captions"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image files"})
		return
	}
	defer closeFiles()

	listing, err := h.propertyUseCase.ReplaceImages(c.Request.Context(), userID, c.Param("id"), uploads)
	if err != nil {
		h.logger.Error("Failed to replace images: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// SubmitDocuments godoc
// @Summary      Submit ownership documents
// @Description  Replace the ownership documents of a listing. The listing returns to pending_verification and must be reviewed again.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body object true "Documents" SchemaExample({"documents":[{"document_type":"certificate_of_occupancy","document_number":"CO-12345"}]})
// @Success      200  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /listings/{id}/documents [put]
func (h *PropertyHandler) SubmitDocuments(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Documents []entity.OwnershipDocument `json:"documents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.propertyUseCase.SubmitDocuments(c.Request.Context(), userID, c.Param("id"), req.Documents)
	if err != nil {
		h.logger.Error("Failed to submit documents: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetMyListings godoc
// @Summary      Get own listings
// @Description  Get the authenticated user's listings in every verification status
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /listings/mine [get]
func (h *PropertyHandler) GetMyListings(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := parseIntQuery(c, "limit", 20, 100)
	offset := parseIntQuery(c, "offset", 0, 0)

	listings, err := h.propertyUseCase.GetOwnerListings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get own listings: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings), "offset": offset})
}

// DeleteListing godoc
// @Summary      Delete listing
// @Description  Delete a listing. Only the owner or an admin can delete a listing.
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /listings/{id} [delete]
func (h *PropertyHandler) DeleteListing(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.propertyUseCase.DeleteListing(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.logger.Error("Failed to delete listing: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

func parseIntQuery(c *gin.Context, name string, fallback, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
