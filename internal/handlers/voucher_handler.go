package handlers

import (
	"net/http"
	"strconv"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type VoucherHandler struct {
	Service *services.VoucherService
}

func NewVoucherHandler(s *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{Service: s}
}

type voucherResponse struct {
	*models.Voucher
	Number string `json:"number"`
}

// CreateOrGet issues the booking's voucher, or returns the existing
// one. POST /vouchers/{type}/{id}.
func (h *VoucherHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingType := models.BookingType(vars["type"])
	bookingID, _ := strconv.Atoi(vars["id"])

	v, err := h.Service.CreateOrGet(r.Context(), bookingType, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, voucherResponse{Voucher: v, Number: v.Number()})
}

func (h *VoucherHandler) GetByBooking(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingType := models.BookingType(vars["type"])
	bookingID, _ := strconv.Atoi(vars["id"])

	v, err := h.Service.GetByBooking(r.Context(), bookingType, bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, voucherResponse{Voucher: v, Number: v.Number()})
}

func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	vouchers, err := h.Service.List(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]voucherResponse, len(vouchers))
	for i, v := range vouchers {
		out[i] = voucherResponse{Voucher: v, Number: v.Number()}
	}
	utils.JSON(w, http.StatusOK, out)
}
