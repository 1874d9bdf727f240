package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sbhworks/indentflow/internal/models"
	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login checks the submitted credentials against the Master sheet and
// issues a token pair. There is no local account table; the sheet row is
// the account.
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	rows, err := r.sheets.Read(req.Context(), r.cfg.Sheets.MasterSheet)
	if err != nil {
		log.Printf("Error reading Master sheet: %v", err)
		respondError(w, http.StatusBadGateway, "Failed to reach credential store")
		return
	}

	var user *models.User
	for _, row := range rows {
		if row.Get(schema.MasterColUsername) != loginReq.Username {
			continue
		}
		if !utils.VerifyPassword(loginReq.Password, row.Get(schema.MasterColPassword)) {
			continue
		}
		role := row.Get(schema.MasterColRole)
		if role == "" {
			role = "user"
		}
		user = &models.User{
			Username: loginReq.Username,
			Name:     row.Get(schema.MasterColName),
			Role:     role,
		}
		break
	}

	if user == nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user": user,
	})
}
