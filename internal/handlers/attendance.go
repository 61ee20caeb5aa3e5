package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/middleware"
)

type BulkAttendanceRequest struct {
	CharacterIDs []string  `json:"character_ids"`
	SessionName  string    `json:"session_name"`
	SessionDate  time.Time `json:"session_date"`
}

func (h *Handler) AwardToken(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var form domain.AttendanceForm

	if err := ctx.BindJSON(&form); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.tracker.AwardToken(ctx.Request.Context(), currentUser, form)

	if err != nil {
		respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh("attendance_awarded")
	ctx.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *Handler) AwardTokensBulk(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req BulkAttendanceRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tokens, err := h.tracker.AwardTokensBulk(ctx.Request.Context(), currentUser, req.CharacterIDs, req.SessionName, req.SessionDate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh("attendance_awarded")
	ctx.JSON(http.StatusCreated, gin.H{"tokens": tokens})
}

func (h *Handler) DeleteToken(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tracker.DeleteToken(ctx.Request.Context(), currentUser, ctx.Param("token_id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Token deleted successfully"})
}

// ListTokens lists every token, or the tokens of one session when the
// "session" query parameter is set.
func (h *Handler) ListTokens(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var (
		tokens []domain.AttendanceToken
		err    error
	)

	if session := ctx.Query("session"); session != "" {
		tokens, err = h.tracker.TokensBySession(ctx.Request.Context(), currentUser, session)
	} else {
		tokens, err = h.tracker.AllTokens(ctx.Request.Context(), currentUser)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *Handler) RecentTokens(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tokens, err := h.tracker.RecentTokens(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *Handler) SessionNames(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sessions, err := h.tracker.SessionNames(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *Handler) CharacterTokens(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tokens, err := h.tracker.CharacterTokens(ctx.Request.Context(), currentUser, ctx.Param("character_id"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *Handler) CharacterAttendanceSummary(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	characterID := ctx.Param("character_id")

	count, err := h.tracker.AttendanceCount(ctx.Request.Context(), currentUser, characterID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	sessions, err := h.tracker.SessionsAttended(ctx.Request.Context(), currentUser, characterID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count, "sessions": sessions})
}
