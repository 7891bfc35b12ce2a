package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/services"
	"nidhi/internal/timeutil"
)

// PriceHandler handles reference price and FX settings requests.
type PriceHandler struct {
	priceService services.PriceServicer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService services.PriceServicer) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// FXSettingsRequest represents the FX overrides payload. Zero rates mean
// "use the live rate".
type FXSettingsRequest struct {
	USDToAED        float64 `json:"usd_to_aed" binding:"gte=0"`
	INRToAED        float64 `json:"inr_to_aed" binding:"gte=0"`
	DisplayCurrency string  `json:"display_currency" binding:"required,display_currency"`
}

// GetQuotes handles fetching the reference quote set.
// @Summary     Reference quotes
// @Description Get gold/silver spot prices and forex rates, with per-feed failure states
// @Tags        prices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.QuoteSet "Metal and forex quotes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /prices/quotes [get]
func (h *PriceHandler) GetQuotes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	quotes, err := h.priceService.GetQuotes(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quotes":  quotes,
		"fetched": timeutil.Relative(quotes.FetchedAt, time.Now()),
	})
}

// RefreshNAVs handles the NAV refresh sweep for the user's funds.
// @Summary     Refresh NAVs
// @Description Fetch latest NAVs for the user's mutual fund and SIP holdings
// @Tags        prices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Count of assets updated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /prices/navs/refresh [post]
func (h *PriceHandler) RefreshNAVs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.priceService.RefreshNAVs(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets_updated": updated})
}

// GetFXSettings handles reading the user's FX overrides.
// @Summary     Get FX settings
// @Description Get the user's conversion overrides and display currency
// @Tags        prices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FXSetting "FX settings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/fx [get]
func (h *PriceHandler) GetFXSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.priceService.GetFXSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateFXSettings handles storing the user's FX overrides.
// @Summary     Update FX settings
// @Description Set conversion overrides and display currency; zero rates mean live
// @Tags        prices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FXSettingsRequest true "FX settings"
// @Success     200 {object} models.FXSetting "Updated FX settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/fx [put]
func (h *PriceHandler) UpdateFXSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FXSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.priceService.UpdateFXSettings(userID, req.USDToAED, req.INRToAED, req.DisplayCurrency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
