package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/services"

	"github.com/gorilla/mux"
)

// DocumentHandler serves generated PDFs.
type DocumentHandler struct {
	Service *services.DocumentService
}

func NewDocumentHandler(s *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: s}
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Write(data)
}

// VoucherPDF renders the booking's voucher, issuing it first if needed.
// GET /documents/voucher/{type}/{id}.
func (h *DocumentHandler) VoucherPDF(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingType := models.BookingType(vars["type"])
	bookingID, _ := strconv.Atoi(vars["id"])

	filename, data, err := h.Service.VoucherPDF(r.Context(), bookingType, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	servePDF(w, filename, data)
}

// InvoicePDF renders an invoice. GET /documents/invoice/{id}.
func (h *DocumentHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	filename, data, err := h.Service.InvoicePDF(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	servePDF(w, filename, data)
}
