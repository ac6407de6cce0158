package handler

import (
	"log/slog"
	"net/http"

	storageSvc "aeromaint/internal/domain/services/storage"
	"aeromaint/internal/httputil"
)

// TreeHandler handles document tree HTTP requests
type TreeHandler struct {
	treeService storageSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService storageSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the caller's full folder/file hierarchy
// GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)
	if ownerID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing owner identity")
		return
	}

	tree, err := h.treeService.GetTree(r.Context(), ownerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
