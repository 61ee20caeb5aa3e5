package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/middleware"
)

func (h *Handler) AwardVoucher(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var form domain.VoucherForm

	if err := ctx.BindJSON(&form); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	voucher, err := h.tracker.AwardVoucher(ctx.Request.Context(), currentUser, form)

	if err != nil {
		respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh("voucher_awarded")
	ctx.JSON(http.StatusCreated, gin.H{"voucher": voucher})
}

func (h *Handler) UseVoucher(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	voucher, err := h.tracker.UseVoucher(ctx.Request.Context(), currentUser, ctx.Param("voucher_id"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"voucher": voucher})
}

func (h *Handler) UnuseVoucher(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	voucher, err := h.tracker.UnuseVoucher(ctx.Request.Context(), currentUser, ctx.Param("voucher_id"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"voucher": voucher})
}

func (h *Handler) DeleteVoucher(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.tracker.DeleteVoucher(ctx.Request.Context(), currentUser, ctx.Param("voucher_id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Voucher deleted successfully"})
}

func (h *Handler) ListVouchers(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vouchers, err := h.tracker.AllVouchers(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

func (h *Handler) RecentVouchers(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	vouchers, err := h.tracker.RecentVouchers(ctx.Request.Context(), currentUser)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

// CharacterVouchers lists a character's vouchers, optionally filtered by the
// "status" (unused/used) or "rarity" query parameters.
func (h *Handler) CharacterVouchers(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	characterID := ctx.Param("character_id")

	var (
		vouchers []domain.LootVoucher
		err      error
	)

	switch {
	case ctx.Query("status") == "unused":
		vouchers, err = h.tracker.UnusedVouchers(ctx.Request.Context(), currentUser, characterID)
	case ctx.Query("status") == "used":
		vouchers, err = h.tracker.UsedVouchers(ctx.Request.Context(), currentUser, characterID)
	case ctx.Query("rarity") != "":
		vouchers, err = h.tracker.VouchersByRarity(ctx.Request.Context(), currentUser, characterID, domain.Rarity(ctx.Query("rarity")))
	default:
		vouchers, err = h.tracker.CharacterVouchers(ctx.Request.Context(), currentUser, characterID)
	}

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

func (h *Handler) VoucherCounts(ctx *gin.Context) {
	currentUser, ok := middleware.CurrentUser(ctx)

	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	counts, err := h.tracker.VoucherCounts(ctx.Request.Context(), currentUser, ctx.Param("character_id"))

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"counts": counts})
}
