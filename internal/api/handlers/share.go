package handlers

import (
	"net/http"

	"github.com/priyan-sh/dropgate/internal/api/middleware"
	"github.com/priyan-sh/dropgate/internal/utils"
)

// GET /api/v1/shares/{token}
// SharePreview godoc
// @Summary Preview a shared file
// @Description Public. Returns file and share metadata for an active share token without consuming a download.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} utils.Payload "Shared file retrieved successfully"
// @Failure 404 {object} utils.Payload "Share link not found"
// @Failure 410 {object} utils.Payload "Expired or download limit reached"
// @Router /shares/{token} [get]
func (h *Handler) SharePreview(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Missing share token",
		})
		return
	}

	resolved, v := h.shares.Resolve(r.Context(), token)
	if resolved == nil {
		writeInactiveShare(w, v.Reason)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Shared file retrieved successfully",
		Data: map[string]any{
			"file": map[string]any{
				"fileId":       resolved.File.ID,
				"originalName": resolved.File.OriginalName,
				"size":         resolved.File.Size,
				"mimeType":     resolved.File.MimeType,
				"createdAt":    resolved.File.CreatedAt,
			},
			"share": map[string]any{
				"shareToken":    resolved.Share.Token,
				"downloadCount": resolved.Share.DownloadCount,
				"maxDownloads":  resolved.Share.MaxDownloads,
				"expiresAt":     resolved.Share.ExpiresAt,
				"createdAt":     resolved.Share.CreatedAt,
			},
		},
	})
}

// GET /api/v1/shares/{token}/download
// ShareDownload godoc
// @Summary Download through a share link
// @Description Public. Re-validates the share, returns a time-limited download URL and records the download.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} utils.Payload "File download initiated"
// @Failure 404 {object} utils.Payload "Share link not found"
// @Failure 410 {object} utils.Payload "Expired or download limit reached"
// @Router /shares/{token}/download [get]
func (h *Handler) ShareDownload(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Missing share token",
		})
		return
	}

	url, v, err := h.shares.ConsumeDownload(r.Context(), token)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to generate download URL",
		})
		return
	}
	if url == "" {
		writeInactiveShare(w, v.Reason)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File download initiated",
		Data:    map[string]any{"downloadUrl": url},
	})
}

// GET /api/v1/shares/{token}/stats
// ShareStats godoc
// @Summary Share statistics
// @Description Public. Download counts and derived state flags for a share.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} utils.Payload "Share statistics retrieved"
// @Failure 404 {object} utils.Payload "Share not found"
// @Router /shares/{token}/stats [get]
func (h *Handler) ShareStats(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	stats, err := h.shares.Stats(r.Context(), token)
	if err != nil {
		writeServiceError(w, err, "Failed to get share statistics")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share statistics retrieved",
		Data:    map[string]any{"stats": stats},
	})
}

// DELETE /api/v1/shares/{token}
// DeleteShare godoc
// @Summary Delete a share link
// @Description Requires ownership of the underlying file.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} utils.Payload "Share link deleted successfully"
// @Failure 403 {object} utils.Payload "Access denied"
// @Failure 404 {object} utils.Payload "Share not found"
// @Router /shares/{token} [delete]
func (h *Handler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	token := r.PathValue("token")

	if err := h.shares.Delete(r.Context(), token, userID); err != nil {
		writeServiceError(w, err, "Failed to delete share link")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share link deleted successfully",
	})
}
