package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shgledger/internal/auth"
	"shgledger/internal/middleware"
	"shgledger/internal/services"
	"shgledger/internal/validator"
	"shgledger/internal/websocket"
)

type registerGroupRequest struct {
	SHGNumber         string `json:"shg_number"`
	Name              string `json:"name"`
	Village           string `json:"village"`
	PresidentUsername string `json:"president_username"`
	PresidentPassword string `json:"president_password"`
}

func (h *Handler) RegisterGroup(w http.ResponseWriter, r *http.Request) {
	var req registerGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateSHGNumber(req.SHGNumber); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateName(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateUsername(req.PresidentUsername); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePassword(req.PresidentPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	groupID, err := h.registry.CreateGroup(r.Context(), services.CreateGroupRequest{
		SHGNumber:         req.SHGNumber,
		Name:              req.Name,
		Village:           req.Village,
		PresidentUsername: req.PresidentUsername,
		PresidentPassword: req.PresidentPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateGroup) {
			respondError(w, http.StatusConflict, "shg number already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, groupID, auth.RolePresident, "", h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"group_id": groupID,
		"token":    token,
	})
}

type presidentLoginRequest struct {
	SHGNumber string `json:"shg_number"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func (h *Handler) PresidentLogin(w http.ResponseWriter, r *http.Request) {
	var req presidentLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	group, ok, err := h.registry.AuthenticatePresident(r.Context(), req.SHGNumber, req.Username, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, group.ID, auth.RolePresident, "", h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token":      token,
		"group_id":   group.ID,
		"group_name": group.Name,
		"role":       auth.RolePresident,
	})
}

type memberLoginRequest struct {
	SHGNumber string `json:"shg_number"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

// MemberLogin issues a read-only token for a member who matches the group's
// registry by name and mobile. Members who left the group cannot log in.
func (h *Handler) MemberLogin(w http.ResponseWriter, r *http.Request) {
	var req memberLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateMobile(req.Mobile); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	group, memberID, ok, err := h.registry.AuthenticateMember(r.Context(), req.SHGNumber, req.FirstName, req.LastName, req.Mobile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, group.ID, auth.RoleMember, memberID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token":      token,
		"group_id":   group.ID,
		"group_name": group.Name,
		"member_id":  memberID,
		"role":       auth.RoleMember,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidatePassword(req.NewPassword); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.registry.ChangePresidentPassword(r.Context(), claims.GroupID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "password change failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func (h *Handler) WSWallet(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.GroupID)
}
