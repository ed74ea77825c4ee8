package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	application "github.com/debtledger/backend/internal/application/backup"
	"github.com/gin-gonic/gin"
)

// BackupHandler handles backup export and restore. Both routes are
// admin only.
type BackupHandler struct {
	BaseHandler
	backupService *application.Service
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *application.Service) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export serializes all data into a downloadable JSON bundle
func (h *BackupHandler) Export(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	bundle, err := h.backupService.Export(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.JSON(http.StatusOK, bundle)
}

// Restore replaces all ledger data with an uploaded bundle
func (h *BackupHandler) Restore(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return
	}

	if err := h.backupService.Restore(c.Request.Context(), actor, raw); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Backup restored successfully"})
}
