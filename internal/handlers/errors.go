package handlers

import (
	"log"
	"net/http"

	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"
)

// writeError maps service errors to HTTP status codes. Unknown errors
// become 500 with a generic body; the detail goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case services.IsNotFound(err):
		utils.Error(w, http.StatusNotFound, err.Error())
	case services.IsInvalidArgument(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[Handler] %v", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
