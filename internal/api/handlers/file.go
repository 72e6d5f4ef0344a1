package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/priyan-sh/dropgate/internal/api/middleware"
	"github.com/priyan-sh/dropgate/internal/utils"
)

const maxUploadSize = 100 << 20 // 100 MB

// POST /api/v1/files/upload
// UploadFile godoc
// @Summary Upload a file
// @Description Stores the file in the blob store and records its metadata under the authenticated user.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} utils.Payload "File uploaded successfully"
// @Failure 400 {object} utils.Payload "No file provided"
// @Failure 500 {object} utils.Payload "Storage write failed"
// @Router /files/upload [post]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid file upload form",
		})
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "No file provided",
		})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil || int64(len(data)) > maxUploadSize {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "File exceeds 100 MB limit",
		})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	file, err := h.files.Upload(r.Context(), userID, header.Filename, mimeType, data)
	if err != nil {
		writeServiceError(w, err, "Failed to upload file")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File uploaded successfully",
		Data: map[string]any{
			"fileId":   file.ID,
			"fileName": file.OriginalName,
			"size":     file.Size,
			"mimeType": file.MimeType,
		},
	})
}

// POST /api/v1/files/{fileId}/share
// CreateShareLink godoc
// @Summary Create a share link for a file
// @Description Mints an unguessable token with optional expiry and download limit. Only the file owner may share it.
// @Tags Files
// @Accept json
// @Produce json
// @Param fileId path string true "File ID"
// @Success 200 {object} utils.Payload "Share link created successfully"
// @Failure 403 {object} utils.Payload "Access denied"
// @Failure 404 {object} utils.Payload "File not found"
// @Router /files/{fileId}/share [post]
func (h *Handler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	fileID, err := uuid.Parse(r.PathValue("fileId"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid file id",
		})
		return
	}

	type Input struct {
		ExpiresAt    *time.Time `json:"expiresAt"`
		MaxDownloads *int       `json:"maxDownloads"`
	}
	var input Input
	if r.Body != nil {
		// Empty body means no expiry and no limit.
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}
	}
	if input.MaxDownloads != nil && *input.MaxDownloads < 1 {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "maxDownloads must be at least 1",
		})
		return
	}

	created, err := h.shares.CreateLink(r.Context(), fileID, userID, input.ExpiresAt, input.MaxDownloads)
	if err != nil {
		writeServiceError(w, err, "Failed to create share link")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Share link created successfully",
		Data: map[string]any{
			"shareLink":    created.ShareURL,
			"shareToken":   created.Share.Token,
			"expiresAt":    created.Share.ExpiresAt,
			"maxDownloads": created.Share.MaxDownloads,
		},
	})
}

// GET /api/v1/files/my-files
// MyFiles godoc
// @Summary List the authenticated user's files
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload "Files retrieved successfully"
// @Router /files/my-files [get]
func (h *Handler) MyFiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	files, err := h.files.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to get files")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Files retrieved successfully",
		Data:    map[string]any{"files": files},
	})
}

// GET /api/v1/files/my-shares
// MyShares godoc
// @Summary List the authenticated user's shares, enriched with file names
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload "Shares retrieved successfully"
// @Router /files/my-shares [get]
func (h *Handler) MyShares(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	shares, err := h.views.UserShares(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to get shares")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Shares retrieved successfully",
		Data:    map[string]any{"shares": shares},
	})
}

// GET /api/v1/files/analytics
// FileAnalyticsView godoc
// @Summary Per-file share and download rollups for the dashboard
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload "Analytics retrieved successfully"
// @Router /files/analytics [get]
func (h *Handler) FileAnalyticsView(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	analytics, err := h.views.FileAnalytics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to get analytics")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Analytics retrieved successfully",
		Data:    map[string]any{"files": analytics},
	})
}

// GET /api/v1/files/{fileId}
// FileInfo godoc
// @Summary Get file metadata
// @Tags Files
// @Produce json
// @Param fileId path string true "File ID"
// @Success 200 {object} utils.Payload "File info retrieved successfully"
// @Failure 404 {object} utils.Payload "File not found"
// @Router /files/{fileId} [get]
func (h *Handler) FileInfo(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(r.PathValue("fileId"))
	if err != nil {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "File not found",
		})
		return
	}

	file, err := h.files.Get(r.Context(), fileID)
	if err != nil {
		writeServiceError(w, err, "Failed to get file info")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File info retrieved successfully",
		Data:    map[string]any{"file": file},
	})
}

// DELETE /api/v1/files/{fileId}
// DeleteFile godoc
// @Summary Delete a file, its blob and every share pointing at it
// @Tags Files
// @Produce json
// @Param fileId path string true "File ID"
// @Success 200 {object} utils.Payload "File deleted successfully"
// @Failure 403 {object} utils.Payload "Access denied"
// @Failure 404 {object} utils.Payload "File not found"
// @Router /files/{fileId} [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	fileID, err := uuid.Parse(r.PathValue("fileId"))
	if err != nil {
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "File not found",
		})
		return
	}

	if err := h.files.Delete(r.Context(), fileID, userID); err != nil {
		writeServiceError(w, err, "Failed to delete file")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File deleted successfully",
	})
}
