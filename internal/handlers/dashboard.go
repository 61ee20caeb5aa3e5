package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/middleware"
)

func (h *Handler) GetDashboard(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dashboard, err := h.tracker.Dashboard(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}
