package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Service *services.BookingService
}

func NewBookingHandler(s *services.BookingService) *BookingHandler {
	return &BookingHandler{Service: s}
}

func (h *BookingHandler) CreateTourBooking(w http.ResponseWriter, r *http.Request) {
	var b models.TourBooking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.CreateTourBooking(r.Context(), &b)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *BookingHandler) CreateTransferBooking(w http.ResponseWriter, r *http.Request) {
	var b models.TransferBooking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.CreateTransferBooking(r.Context(), &b)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, created)
}

func (h *BookingHandler) ListTourBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookings, err := h.Service.ListTourBookings(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListTransferBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookings, err := h.Service.ListTransferBookings(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetTourBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	b, err := h.Service.GetTourBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) GetTransferBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	b, err := h.Service.GetTransferBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) UpdateTourBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var b models.TourBooking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.ID = id

	if err := h.Service.UpdateTourBooking(r.Context(), &b); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

func (h *BookingHandler) UpdateTransferBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var b models.TransferBooking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.ID = id

	if err := h.Service.UpdateTransferBooking(r.Context(), &b); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

// UpdateStatus advances a booking's delivery status. The booking type
// comes from the path: /bookings/{type}/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingType := models.BookingType(vars["type"])
	id, _ := strconv.Atoi(vars["id"])

	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), bookingType, id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *BookingHandler) DeleteTourBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteTourBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *BookingHandler) DeleteTransferBooking(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteTransferBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
