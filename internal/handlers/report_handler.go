package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sevensmile-backend/internal/metrics"
	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"
)

// ReportHandler serves the xlsx booking report as a download.
type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var opts services.ReportOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if opts.Format == "" {
		opts.Format = services.FormatCombined
	}
	filename, data, err := h.Service.BuildReport(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.ReportsGenerated.WithLabelValues(string(opts.Format)).Inc()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Write(data)
}
