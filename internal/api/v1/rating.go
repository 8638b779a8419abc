package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patabima/patabima/internal/api/dto"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/service"
	"github.com/patabima/patabima/internal/types"
)

type RatingHandler struct {
	service service.RatingService
	log     *logger.Logger
}

func NewRatingHandler(service service.RatingService, log *logger.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Compute a premium
// @Description Price an application against the current pricing config
// @Tags Rating
// @Accept json
// @Produce json
// @Param product_type path string true "Product type"
// @Param application body object true "Application payload for the product"
// @Success 200 {object} dto.ComputePremiumResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /rating/{product_type}/compute [post]
func (h *RatingHandler) ComputePremium(c *gin.Context) {
	productType := types.ProductType(c.Param("product_type"))
	if err := productType.Validate(); err != nil {
		c.Error(err)
		return
	}

	application, err := c.GetRawData()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read request body").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ComputePremium(c.Request.Context(), dto.ComputePremiumRequest{
		ProductType: productType,
		Application: application,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
