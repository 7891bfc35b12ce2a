package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
	"nidhi/internal/pagination"
	"nidhi/internal/services"
)

// AssetHandler handles asset CRUD and valuation requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AssetRequest represents the create/update asset payload.
type AssetRequest struct {
	Name         string     `json:"name" binding:"required,max=255"`
	Category     string     `json:"category" binding:"required,asset_category"`
	Currency     string     `json:"currency" binding:"required,holding_currency"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Quantity     float64    `json:"quantity" binding:"gte=0"`
	Unit         string     `json:"unit" binding:"max=50"`
	TotalCost    float64    `json:"total_cost" binding:"gte=0"`
	CurrentValue *float64   `json:"current_value"`
	ManualValue  bool       `json:"manual_value"`

	Principal      *float64   `json:"principal"`
	InterestRate   *float64   `json:"interest_rate"`
	MaturityDate   *time.Time `json:"maturity_date"`
	MaturityAmount *float64   `json:"maturity_amount"`

	Location     string   `json:"location" binding:"max=255"`
	AreaSqft     *float64 `json:"area_sqft"`
	RentalIncome *float64 `json:"rental_income"`

	SchemeCode string `json:"scheme_code" binding:"max=20"`
	FolioNo    string `json:"folio_no" binding:"max=50"`
	Notes      string `json:"notes" binding:"max=1000"`
}

func (r *AssetRequest) toInput() services.AssetInput {
	return services.AssetInput{
		Name:           r.Name,
		Category:       models.AssetCategory(r.Category),
		Currency:       r.Currency,
		PurchaseDate:   r.PurchaseDate,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		TotalCost:      r.TotalCost,
		CurrentValue:   r.CurrentValue,
		ManualValue:    r.ManualValue,
		Principal:      r.Principal,
		InterestRate:   r.InterestRate,
		MaturityDate:   r.MaturityDate,
		MaturityAmount: r.MaturityAmount,
		Location:       r.Location,
		AreaSqft:       r.AreaSqft,
		RentalIncome:   r.RentalIncome,
		SchemeCode:     r.SchemeCode,
		FolioNo:        r.FolioNo,
		Notes:          r.Notes,
	}
}

// CreateAsset handles asset creation.
// @Summary     Create an asset
// @Description Create a new asset for the authenticated user
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AssetRequest true "Asset data"
// @Success     201 {object} models.Asset "Created asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets handles listing the user's assets.
// @Summary     List assets
// @Description Get a paginated list of the authenticated user's assets
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       currency  query string false "Filter by holding currency (AED or INR)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.AssetFilter
	if raw := c.Query("category"); raw != "" {
		category := models.AssetCategory(raw)
		filter.Category = &category
	}
	if raw := c.Query("currency"); raw != "" {
		filter.Currency = &raw
	}

	result, err := h.assetService.GetUserAssets(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAsset handles retrieving a single asset.
// @Summary     Get an asset
// @Description Get one of the authenticated user's assets by ID
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles replacing an asset's editable fields.
// @Summary     Update an asset
// @Description Update one of the authenticated user's assets
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Asset ID"
// @Param       request body AssetRequest true "Asset data"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(userID, assetID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles asset deletion.
// @Summary     Delete an asset
// @Description Delete one of the authenticated user's assets and its ledger
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     204 "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssetValue handles resolving an asset's current value.
// @Summary     Value an asset
// @Description Resolve an asset's current value and the method that produced it
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} services.AssetValuation "Valuation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id}/value [get]
func (h *AssetHandler) GetAssetValue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.assetService.ValueAsset(userID, assetID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
