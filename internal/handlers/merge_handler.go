package handlers

import (
	"encoding/json"
	"net/http"

	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"
)

// MergeHandler exposes the duplicate-merge workflow: preview the blast
// radius, detect field conflicts, then execute.
type MergeHandler struct {
	Service *services.MergeService
}

func NewMergeHandler(s *services.MergeService) *MergeHandler {
	return &MergeHandler{Service: s}
}

type mergeRequest struct {
	MasterID     int               `json:"master_id"`
	DuplicateIDs []int             `json:"duplicate_ids"`
	Resolutions  map[string]string `json:"resolutions,omitempty"`
}

func (h *MergeHandler) PreviewImpact(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	impact, err := h.Service.PreviewImpact(r.Context(), req.MasterID, req.DuplicateIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, impact)
}

func (h *MergeHandler) DetectConflicts(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conflicts, err := h.Service.Conflicts(r.Context(), req.MasterID, req.DuplicateIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"conflicts":     conflicts,
		"has_conflicts": len(conflicts) > 0,
	})
}

func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Merge(r.Context(), req.MasterID, req.DuplicateIDs, req.Resolutions); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{
		"status":    "merged",
		"master_id": req.MasterID,
		"merged":    len(req.DuplicateIDs),
	})
}
