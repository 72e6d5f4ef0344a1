package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/priyan-sh/dropgate/internal/auth"
	"github.com/priyan-sh/dropgate/internal/models"
	"github.com/priyan-sh/dropgate/internal/utils"
)

const sessionValidity = 24 * time.Hour

// POST /auth/sign-up
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	type Input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	var input Input
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}
	if input.Name == "" {
		input.Name = "User"
	}

	if _, err := h.users.GetByEmail(r.Context(), input.Email); err == nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "User already exists with this email",
		})
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	user := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: hashed,
	}
	if err := h.users.Create(r.Context(), &user); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database insert failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
	})
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	type Input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := h.users.GetByEmail(r.Context(), input.Email)
	if err != nil || !auth.CheckPassword(user.Password, input.Password) {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}

	if err := h.issueSession(w, user); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to create session",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged in successfully",
		Data: map[string]any{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GET /auth/google/login
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := GenerateState(map[string]string{"flow": "login"})
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to start login",
		})
		return
	}
	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if _, err := DecodeState(r.URL.Query().Get("state")); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid state",
		})
		return
	}

	info, err := h.fetchGoogleUser(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Google sign-in failed",
		})
		return
	}

	user, err := h.users.GetByEmail(r.Context(), info.Email)
	if err != nil {
		user = &models.User{
			Email:    info.Email,
			Name:     info.Name,
			Password: "-", // OAuth accounts have no local password
			Verified: true,
		}
		if err := h.users.Create(r.Context(), user); err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to create user",
			})
			return
		}
	}

	if err := h.issueSession(w, user); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to create session",
		})
		return
	}

	http.Redirect(w, r, h.cfg.ShareBaseURL, http.StatusTemporaryRedirect)
}

type googleUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) fetchGoogleUser(ctx context.Context, code string) (*googleUser, error) {
	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := h.oauth.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var info googleUser
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		return nil, fmt.Errorf("invalid userinfo response")
	}
	return &info, nil
}

func (h *Handler) issueSession(w http.ResponseWriter, user *models.User) error {
	token, err := auth.GenerateToken(user.ID, user.Email, h.cfg.JWTSecret, sessionValidity)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionValidity.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Environment != "development",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
