package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// AccessHandler exposes the caller's own site-access state and document flow.
type AccessHandler struct {
	accessService service.AccessService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(accessService service.AccessService) *AccessHandler {
	return &AccessHandler{accessService: accessService}
}

// --- Request/Response Structs ---

type DocumentUploadRequest struct {
	ContentType string `json:"contentType"`
}

type DocumentUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Handler Methods ---

// MyAccess returns the caller's access row. A user who was never granted
// access sees hasSiteAccess false, not an error.
func (h *AccessHandler) MyAccess(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	access, err := h.accessService.GetAccess(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve access state")
		return
	}
	c.JSON(http.StatusOK, access)
}

// RequestDocumentUpload returns a presigned PUT URL so the caller can upload
// a verification document directly to object storage.
func (h *AccessHandler) RequestDocumentUpload(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	var req DocumentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, objectKey, err := h.accessService.RequestDocumentUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare document upload")
		return
	}
	c.JSON(http.StatusOK, DocumentUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	})
}

// MyDocumentURL returns a presigned GET URL for the caller's own document.
func (h *AccessHandler) MyDocumentURL(c *gin.Context) {
	userID, ok := currentUserObjectID(c)
	if !ok {
		return
	}

	downloadURL, err := h.accessService.DocumentDownloadURL(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoDocument) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare document download")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}
