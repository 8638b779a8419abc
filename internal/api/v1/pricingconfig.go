package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patabima/patabima/internal/api/dto"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/service"
)

type PricingConfigHandler struct {
	service service.PricingConfigService
	log     *logger.Logger
}

func NewPricingConfigHandler(service service.PricingConfigService, log *logger.Logger) *PricingConfigHandler {
	return &PricingConfigHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get the current pricing config
// @Description Get the pricing config version currently in force
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Success 200 {object} dto.PricingConfigResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/config [get]
func (h *PricingConfigHandler) GetCurrent(c *gin.Context) {
	resp, err := h.service.GetCurrent(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a pricing config version
// @Description Get a specific installed pricing config version
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Param version path int true "Config version"
// @Success 200 {object} dto.PricingConfigResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /pricing/config/versions/{version} [get]
func (h *PricingConfigHandler) GetVersion(c *gin.Context) {
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Version must be an integer").
			Mark(ierr.ErrValidation))
		return
	}

	cfg, err := h.service.GetVersion(c.Request.Context(), version)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.PricingConfigResponse{PricingConfig: cfg})
}

// @Summary List pricing config history
// @Description List all installed pricing config versions, newest first
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Success 200 {object} dto.ListPricingConfigsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/config/history [get]
func (h *PricingConfigHandler) GetHistory(c *gin.Context) {
	resp, err := h.service.GetHistory(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Propose a new pricing config
// @Description Install a new pricing config version after validation
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Param config body dto.ProposeConfigRequest true "Proposed rule mapping"
// @Success 201 {object} dto.PricingConfigResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /pricing/config [post]
func (h *PricingConfigHandler) Propose(c *gin.Context) {
	var req dto.ProposeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Propose(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Export the current pricing config
// @Description Export the current pricing config as a JSON snapshot
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/config/export [get]
func (h *PricingConfigHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

// @Summary Validate an exported pricing config
// @Description Decode and validate a config snapshot without installing it
// @Tags PricingConfigs
// @Accept json
// @Produce json
// @Param config body dto.ImportConfigRequest true "Exported config snapshot"
// @Success 200 {object} dto.PricingConfigResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /pricing/config/import [post]
func (h *PricingConfigHandler) Import(c *gin.Context) {
	var req dto.ImportConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	cfg, err := h.service.Import(req.Config)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, &dto.PricingConfigResponse{PricingConfig: cfg})
}
