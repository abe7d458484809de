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

type InformationHandler struct {
	Service *services.InformationService
}

func NewInformationHandler(s *services.InformationService) *InformationHandler {
	return &InformationHandler{Service: s}
}

func (h *InformationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInformationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, rec)
}

func (h *InformationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	rec, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}

// ListCategories returns the closed set of categories for frontend
// dropdowns.
func (h *InformationHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.Categories)
}

func (h *InformationHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := models.Category(mux.Vars(r)["category"])
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	records, err := h.Service.ListByCategory(r.Context(), category, activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *InformationHandler) Search(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	term := r.URL.Query().Get("q")

	records, err := h.Service.Search(r.Context(), category, term)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

func (h *InformationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateInformationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, rec)
}

func (h *InformationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
