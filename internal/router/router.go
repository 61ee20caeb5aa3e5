package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/handlers"
	"github.com/adventure-league/tracker/internal/middleware"
	"github.com/adventure-league/tracker/internal/service"
)

func New(h *handlers.Handler, hub *handlers.Hub, tokens *auth.Tokens, tracker *service.Tracker, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// cors.New panics when the config allows no origins at all.
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.RequireAuth(tokens, tracker)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", requireAuth, hub.Serve)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", h.Logout)
			authGroup.GET("/me", requireAuth, h.Me)
		}

		characters := api.Group("/characters", requireAuth)
		{
			characters.POST("", h.CreateCharacter)
			characters.GET("", h.ListCharacters)
			characters.GET("/mine", h.MyCharacters)
			characters.GET("/:character_id", h.GetCharacter)
			characters.PUT("/:character_id", h.UpdateCharacter)
			characters.DELETE("/:character_id", h.DeleteCharacter)

			characters.POST("/:character_id/gold/add", h.AddGold)
			characters.POST("/:character_id/gold/subtract", h.SubtractGold)
			characters.PUT("/:character_id/gold", h.SetGold)

			characters.GET("/:character_id/vouchers", h.CharacterVouchers)
			characters.GET("/:character_id/vouchers/counts", h.VoucherCounts)
			characters.GET("/:character_id/attendance", h.CharacterTokens)
			characters.GET("/:character_id/attendance/summary", h.CharacterAttendanceSummary)
		}

		vouchers := api.Group("/vouchers", requireAuth)
		{
			vouchers.POST("", h.AwardVoucher)
			vouchers.GET("", h.ListVouchers)
			vouchers.GET("/recent", h.RecentVouchers)
			vouchers.POST("/:voucher_id/use", h.UseVoucher)
			vouchers.POST("/:voucher_id/unuse", h.UnuseVoucher)
			vouchers.DELETE("/:voucher_id", h.DeleteVoucher)
		}

		attendance := api.Group("/attendance", requireAuth)
		{
			attendance.POST("", h.AwardToken)
			attendance.POST("/bulk", h.AwardTokensBulk)
			attendance.GET("", h.ListTokens)
			attendance.GET("/recent", h.RecentTokens)
			attendance.GET("/sessions", h.SessionNames)
			attendance.DELETE("/:token_id", h.DeleteToken)
		}

		users := api.Group("/users", requireAuth)
		{
			users.POST("", h.CreateUser)
			users.GET("", h.ListUsers)
			users.PATCH("/:user_id/role", h.UpdateUserRole)
			users.DELETE("/:user_id", h.DeactivateUser)
		}

		api.GET("/dashboard", requireAuth, h.GetDashboard)
	}

	return r
}
