package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nidhi/internal/services"
)

// ExportHandler handles CSV download requests.
type ExportHandler struct {
	exportService services.ExportServicer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService services.ExportServicer) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func writeCSV(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportAssets handles the asset CSV download.
// @Summary     Export assets
// @Description Download the user's assets with resolved values as CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /export/assets [get]
func (h *ExportHandler) ExportAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.ExportAssets(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	writeCSV(c, "assets", data)
}

// ExportTransactions handles the ledger CSV download.
// @Summary     Export transactions
// @Description Download the user's full ledger as CSV, oldest first
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /export/transactions [get]
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.ExportTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	writeCSV(c, "transactions", data)
}

// ExportOverview handles the overview CSV download.
// @Summary     Export overview
// @Description Download the per-category portfolio summary as CSV
// @Tags        export
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /export/overview [get]
func (h *ExportHandler) ExportOverview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.exportService.ExportOverview(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	writeCSV(c, "overview", data)
}
