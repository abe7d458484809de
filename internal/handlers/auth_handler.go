package handlers

import (
	"encoding/json"
	"net/http"

	"sevensmile-backend/internal/auth"
	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"
)

type AuthHandler struct {
	UserService *services.UserService
	TOTPService *services.TOTPService
	JWTManager  *auth.JWTManager
}

func NewAuthHandler(userService *services.UserService, totpService *services.TOTPService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{UserService: userService, TOTPService: totpService, JWTManager: jwtManager}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.UserService.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Login authenticates with email and password. Accounts with 2FA
// enabled get a short-lived temp token instead of a session; the
// client finishes the login via Verify2FA.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.UserService.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	enabled, err := h.TOTPService.Enabled(r.Context(), resp.User.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if enabled {
		tempToken, err := h.JWTManager.GenerateTempToken(resp.User)
		if err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"requires_2fa": true,
			"temp_token":   tempToken,
		})
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Verify2FA exchanges a temp token plus a valid TOTP code for a full
// session token.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired temp token")
		return
	}
	if err := h.TOTPService.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	resp, err := h.UserService.IssueToken(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
