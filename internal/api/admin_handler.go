package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"
	"github.com/ronrevv/wolverinez-workout-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler holds the admin-only dependencies: member management, role
// assignment, subscriptions and site access control.
type AdminHandler struct {
	adminService  service.AdminService
	accessService service.AccessService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService, accessService service.AccessService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		accessService: accessService,
	}
}

// --- Request/Response Structs ---

type SetRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=user trainer admin"`
}

type SubscriptionRequest struct {
	Email            string     `json:"email" binding:"required,email"`
	Subscribed       bool       `json:"subscribed"`
	Tier             string     `json:"tier" binding:"omitempty,oneof=basic premium"`
	SubscriptionEnd  *time.Time `json:"subscriptionEnd"`
	GymMembershipEnd *time.Time `json:"gymMembershipEnd"`
}

// --- Handler Methods ---

// ListMembers returns every account with role and subscription joined.
func (h *AdminHandler) ListMembers(c *gin.Context) {
	members, err := h.adminService.ListMembers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// SetRole writes a user's role row. The change takes effect on the target
// user's next request, without re-login.
func (h *AdminHandler) SetRole(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.adminService.SetRole(c.Request.Context(), userID, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to set role")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": req.Role})
}

// UpsertSubscription writes a user's subscription row.
func (h *AdminHandler) UpsertSubscription(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sub := &domain.Subscription{
		UserID:           userID,
		Email:            req.Email,
		Subscribed:       req.Subscribed,
		Tier:             req.Tier,
		SubscriptionEnd:  req.SubscriptionEnd,
		GymMembershipEnd: req.GymMembershipEnd,
	}
	if err := h.adminService.UpsertSubscription(c.Request.Context(), sub); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save subscription")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// GrantAccess enables site access for a user.
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	adminID, ok := currentUserObjectID(c)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.accessService.Grant(c.Request.Context(), userID, adminID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to grant access")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "hasSiteAccess": true})
}

// RevokeAccess disables site access for a user.
func (h *AdminHandler) RevokeAccess(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.accessService.Revoke(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to revoke access")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "hasSiteAccess": false})
}

// UserDocumentURL returns a presigned download URL for a user's document,
// for admin review before granting access.
func (h *AdminHandler) UserDocumentURL(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format")
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
