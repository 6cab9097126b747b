package http

import (
	"net/http"

	"homefind/internal/usecase"
	"homefind/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	verificationUseCase usecase.VerificationUseCase
	logger              *logger.Logger
}

func NewAdminHandler(verificationUseCase usecase.VerificationUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		verificationUseCase: verificationUseCase,
		logger:              logger,
	}
}

type ReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

// ReviewListing godoc
// @Summary      Review a pending listing
// @Description  Approve or reject a listing awaiting verification. Rejection requires notes. Requires the verify_listing capability.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Listing ID"
// @Param        request body ReviewRequest true "Review decision"
// @Success      200  {object}  entity.Property
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/listings/{id}/review [post]
func (h *AdminHandler) ReviewListing(c *gin.Context) {
	adminID := c.GetString("user_id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := h.verificationUseCase.Review(c.Request.Context(), adminID, c.Param("id"), req.Action == "approve", req.Notes)
	if err != nil {
		h.logger.Error("Failed to review listing: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ListPendingListings godoc
// @Summary      List pending listings
// @Description  Get listings awaiting verification, newest first. Requires the admin_access capability.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /admin/listings/pending [get]
func (h *AdminHandler) ListPendingListings(c *gin.Context) {
	adminID := c.GetString("user_id")
	limit := parseIntQuery(c, "limit", 20, 100)
	offset := parseIntQuery(c, "offset", 0, 0)

	listings, err := h.verificationUseCase.ListPending(c.Request.Context(), adminID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list pending listings: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings), "offset": offset})
}
