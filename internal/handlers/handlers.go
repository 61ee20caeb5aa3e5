// Package handlers exposes the HTTP API over the tracker service layer.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/domain"
	"github.com/adventure-league/tracker/internal/service"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	tracker      *service.Tracker
	hub          *Hub
	cookieDomain string
}

func New(tracker *service.Tracker, hub *Hub, cookieDomain string) *Handler {
	return &Handler{
		tracker:      tracker,
		hub:          hub,
		cookieDomain: cookieDomain,
	}
}

// respondError maps service errors onto HTTP status codes. Unrecognized
// errors are logged and hidden behind a generic 500.
func respondError(ctx *gin.Context, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validationErr.Fields})
	case errors.Is(err, domain.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, domain.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrConstraint):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
