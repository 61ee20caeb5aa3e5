package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/middleware"
)

type GoldRequest struct {
	Amount int `json:"amount"`
}

type SetGoldRequest struct {
	Gold int `json:"gold"`
}

func (h *Handler) CreateCharacter(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var form domain.CharacterForm

	if err := ctx.BindJSON(&form); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	character, err := h.tracker.CreateCharacter(ctx.Request.Context(), currentUser, form)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"character": character})
}

func (h *Handler) GetCharacter(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	character, err := h.tracker.GetCharacter(ctx.Request.Context(), currentUser, ctx.Param("character_id"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"character": character, "total_level": character.TotalLevel()})
}

func (h *Handler) ListCharacters(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var (
		characters []domain.Character
		err        error
	)

	if query := ctx.Query("search"); query != "" {
		characters, err = h.tracker.SearchCharacters(ctx.Request.Context(), currentUser, query)
	} else if playerID := ctx.Query("player_id"); playerID != "" {
		characters, err = h.tracker.CharactersByPlayer(ctx.Request.Context(), currentUser, playerID)
	} else {
		characters, err = h.tracker.AllCharacters(ctx.Request.Context(), currentUser)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"characters": characters})
}

func (h *Handler) MyCharacters(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	characters, err := h.tracker.MyCharacters(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"characters": characters})
}

func (h *Handler) UpdateCharacter(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var form domain.CharacterForm

	if err := ctx.BindJSON(&form); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	character, err := h.tracker.UpdateCharacter(ctx.Request.Context(), currentUser, ctx.Param("character_id"), form)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"character": character})
}

func (h *Handler) DeleteCharacter(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tracker.DeleteCharacter(ctx.Request.Context(), currentUser, ctx.Param("character_id")); err != nil {
		respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh("character_deleted")
	ctx.JSON(http.StatusOK, gin.H{"message": "Character deleted successfully"})
}

func (h *Handler) AddGold(ctx *gin.Context) {
	h.goldOp(ctx, h.tracker.AddGold)
}

func (h *Handler) SubtractGold(ctx *gin.Context) {
	h.goldOp(ctx, h.tracker.SubtractGold)
}

func (h *Handler) SetGold(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SetGoldRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	character, err := h.tracker.SetGold(ctx.Request.Context(), currentUser, ctx.Param("character_id"), req.Gold)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"character": character})
}

func (h *Handler) goldOp(ctx *gin.Context, op func(c context.Context, actor domain.User, id string, amount int) (domain.Character, error)) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GoldRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	character, err := op(ctx.Request.Context(), currentUser, ctx.Param("character_id"), req.Amount)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"character": character})
}
