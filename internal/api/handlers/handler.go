package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/priyan-sh/dropgate/internal/config"
	"github.com/priyan-sh/dropgate/internal/repositories"
	"github.com/priyan-sh/dropgate/internal/services"
	"github.com/priyan-sh/dropgate/internal/utils"
)

type Handler struct {
	cfg    config.Config
	users  repositories.UserRepository
	files  *services.FileService
	shares *services.ShareService
	views  *services.ViewService
	oauth  *oauth2.Config
}

func New(cfg config.Config, users repositories.UserRepository, files *services.FileService, shares *services.ShareService, views *services.ViewService) *Handler {
	return &Handler{
		cfg:    cfg,
		users:  users,
		files:  files,
		shares: shares,
		views:  views,
		oauth:  googleOAuthConfig(cfg.Google),
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses with
// a generic message; internal error text never reaches the wire.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Not found",
		})
	case errors.Is(err, services.ErrAccessDenied):
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Success: false,
			Message: "Access denied",
		})
	case errors.Is(err, services.ErrUnauthenticated):
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: fallback,
		})
	}
}

// writeInactiveShare reports why a public share lookup was refused, in
// coarse terms only.
func writeInactiveShare(w http.ResponseWriter, reason string) {
	switch reason {
	case services.ReasonExpired:
		utils.JSONResponse(w, http.StatusGone, utils.Payload{
			Success: false,
			Message: "This link has expired",
		})
	case services.ReasonLimitReached:
		utils.JSONResponse(w, http.StatusGone, utils.Payload{
			Success: false,
			Message: "Download limit reached",
		})
	default:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Share link not found",
		})
	}
}
