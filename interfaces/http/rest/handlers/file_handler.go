package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"memories-backend/pkg/auth"
	"memories-backend/pkg/common"
	apperrors "memories-backend/pkg/errors"
	"memories-backend/pkg/utils"
)

// FileHandler handles upload-authorization HTTP requests
type FileHandler struct {
	service MemoryService
	logger  *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(service MemoryService, logger *zap.Logger) *FileHandler {
	return &FileHandler{service: service, logger: logger}
}

// PresignRequest represents the request body for an upload authorization
type PresignRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// PresignUpload handles POST /files/presign. The response authorizes exactly
// one PUT of the declared content type; the client uploads directly to
// storage and then creates the record referencing the returned key.
func (h *FileHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.PresignUpload(r.Context(), user.UserID, req.Filename, req.ContentType)
	if err != nil {
		status := apperrors.HTTPStatusOf(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Presign request failed", zap.Error(err))
		}
		common.RespondMessage(w, status, apperrors.MessageOf(err))
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
