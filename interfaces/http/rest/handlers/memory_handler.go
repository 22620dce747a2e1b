package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memories-backend/application/services"
	"memories-backend/pkg/auth"
	"memories-backend/pkg/common"
	apperrors "memories-backend/pkg/errors"
	"memories-backend/pkg/utils"
)

// MemoryService is the application surface the handlers depend on.
type MemoryService interface {
	PresignUpload(ctx context.Context, userID, filename, contentType string) (*services.PresignResult, error)
	CreateMemory(ctx context.Context, userID string, input services.CreateMemoryInput) (*services.MemoryView, error)
	GetMemory(ctx context.Context, userID, memoryID string) (*services.MemoryView, error)
	ListMemories(ctx context.Context, userID string) ([]*services.MemoryView, error)
	DeleteMemory(ctx context.Context, userID, memoryID string) error
}

// MemoryHandler handles memory-record HTTP requests
type MemoryHandler struct {
	service MemoryService
	logger  *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(service MemoryService, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{service: service, logger: logger}
}

// CreateMemoryRequest represents the request body for creating a memory.
// fileKey is the legacy single-photo field. Unknown fields (a client-sent
// userId, id or createdAt) are deliberately ignored, not rejected: those
// values are always derived server-side.
type CreateMemoryRequest struct {
	Title       string   `json:"title" validate:"required"`
	MemoryDate  string   `json:"memoryDate" validate:"required"`
	StorageKeys []string `json:"storageKeys"`
	FileKey     string   `json:"fileKey"`
	Description string   `json:"description"`
}

// CreateMemory handles POST /memories. Creation is not idempotent: a client
// that cannot tell whether a failed create landed must list before retrying
// or accept a possible duplicate.
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.CreateMemory(r.Context(), user.UserID, services.CreateMemoryInput{
		StorageKeys: req.StorageKeys,
		FileKey:     req.FileKey,
		MemoryDate:  req.MemoryDate,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, view)
}

// GetMemory handles GET /memories/{id}
func (h *MemoryHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	memoryID := chi.URLParam(r, "id")
	if memoryID == "" {
		common.RespondMessage(w, http.StatusBadRequest, "Memory id is required")
		return
	}

	view, err := h.service.GetMemory(r.Context(), user.UserID, memoryID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, view)
}

// ListMemories handles GET /memories
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := h.service.ListMemories(r.Context(), user.UserID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, views)
}

// DeleteMemory handles DELETE /memories/{id}
func (h *MemoryHandler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	memoryID := chi.URLParam(r, "id")
	if memoryID == "" {
		common.RespondMessage(w, http.StatusBadRequest, "Memory id is required")
		return
	}

	if err := h.service.DeleteMemory(r.Context(), user.UserID, memoryID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Memory deleted")
}

// respondServiceError maps a service error onto the wire: the HTTP status
// from the error taxonomy plus a structured message body. Internal causes
// are logged here and never exposed.
func (h *MemoryHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.Error(err))
	}
	common.RespondMessage(w, status, apperrors.MessageOf(err))
}
