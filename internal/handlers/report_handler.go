package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
	logger  *slog.Logger
}

func NewReportHandler(service *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// StockReport handles GET /api/admin/reports
func (h *ReportHandler) StockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.StockReport(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, report, h.logger)
}
