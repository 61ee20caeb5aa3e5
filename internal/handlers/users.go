package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/middleware"
)

type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.tracker.CreateUser(ctx.Request.Context(), currentUser, domain.UserForm{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var (
		users []domain.User
		err   error
	)

	if role := ctx.Query("role"); role != "" {
		users, err = h.tracker.ListUsersByRole(ctx.Request.Context(), currentUser, domain.Role(role))
	} else {
		users, err = h.tracker.ListUsers(ctx.Request.Context(), currentUser)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}

	ctx.JSON(http.StatusOK, gin.H{"users": responses})
}

func (h *Handler) UpdateUserRole(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateRoleRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.tracker.UpdateUserRole(ctx.Request.Context(), currentUser, ctx.Param("user_id"), req.Role)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) DeactivateUser(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tracker.DeactivateUser(ctx.Request.Context(), currentUser, ctx.Param("user_id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
