package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patabima/patabima/internal/api/dto"
	"github.com/patabima/patabima/internal/domain/quote"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/service"
	"github.com/patabima/patabima/internal/types"
)

type QuoteHandler struct {
	service service.QuoteService
	log     *logger.Logger
}

func NewQuoteHandler(service service.QuoteService, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a quote
// @Description Price an application and store the result as a draft quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Application to price"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateQuote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a quote
// @Description Get a quote by ID
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	resp, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List quotes
// @Description List quotes filtered by product type and status
// @Tags Quotes
// @Accept json
// @Produce json
// @Param product_type query string false "Product type"
// @Param status query string false "Quote status"
// @Success 200 {object} dto.ListQuotesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := quote.Filter{}

	if productType := c.Query("product_type"); productType != "" {
		filter.ProductType = types.ProductType(productType)
		if err := filter.ProductType.Validate(); err != nil {
			c.Error(err)
			return
		}
	}

	if status := c.Query("status"); status != "" {
		filter.Status = types.QuoteStatus(status)
		if err := filter.Status.Validate(); err != nil {
			c.Error(err)
			return
		}
	}

	resp, err := h.service.ListQuotes(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Transition a quote
// @Description Move a quote to the next lifecycle status
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param transition body dto.TransitionQuoteRequest true "Target status"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /quotes/{id}/transition [post]
func (h *QuoteHandler) Transition(c *gin.Context) {
	var req dto.TransitionQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Audit a quote
// @Description Replay the stored application against the stored config version
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteAuditResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /quotes/{id}/audit [get]
func (h *QuoteHandler) Audit(c *gin.Context) {
	resp, err := h.service.RecomputeForAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Expire stale draft quotes
// @Description Expire draft quotes older than the configured validity window
// @Tags Quotes
// @Accept json
// @Produce json
// @Success 200 {object} dto.ExpireDraftsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /quotes/expire-drafts [post]
func (h *QuoteHandler) ExpireStaleDrafts(c *gin.Context) {
	resp, err := h.service.ExpireStaleDrafts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
