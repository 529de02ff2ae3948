package routes

import (
	"streaming-app/internal/api/admin"
	authapi "streaming-app/internal/api/auth"
	"streaming-app/internal/api/billing"
	musicapi "streaming-app/internal/api/music"
	"streaming-app/internal/api/paymentwebhook"
	"streaming-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Gateway callback: no user session, no input sanitization (the raw
	// payload carries the signature), authenticated by shared secret instead.
	r.POST("/api/payment/notification", paymentwebhook.PaymentNotification)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.PrometheusHandler())

	// Public
	public := r.Group("/api")
	public.Use(middleware.SanitizeInputMiddleware())
	public.POST("/auth/register", authapi.Register)
	public.POST("/auth/login", authapi.Login)
	public.GET("/payment/plans", billing.ListPlans)

	// Catalog browsing: works anonymously, personalizes when a token is sent
	browse := r.Group("/api/music")
	browse.Use(middleware.OptionalAuth())
	browse.GET("/songs", musicapi.ListSongs)
	browse.GET("/songs/:id", musicapi.GetSong)
	browse.POST("/songs/:id/play", musicapi.PlaySong)
	browse.GET("/artists", musicapi.ListArtists)
	browse.GET("/artists/:id", musicapi.GetArtist)
	browse.GET("/albums", musicapi.ListAlbums)
	browse.GET("/albums/:id", musicapi.GetAlbum)
	browse.GET("/playlists/:id", musicapi.GetPlaylist)
	browse.GET("/shared/:slug", musicapi.GetSharedPlaylist)
	browse.GET("/home", musicapi.Home)

	// Authenticated
	auth := r.Group("/api")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())
	auth.GET("/auth/me", authapi.Me)

	auth.POST("/music/songs/:id/like", musicapi.LikeSong)
	auth.GET("/music/liked", musicapi.ListLiked)
	auth.GET("/music/playlists", musicapi.ListPlaylists)
	auth.POST("/music/playlists", musicapi.CreatePlaylist)
	auth.POST("/music/playlists/:id/songs", musicapi.AddSongToPlaylist)
	auth.GET("/music/history", musicapi.History)

	auth.POST("/payment/create-transaction", billing.CreateTransaction)
	auth.GET("/payment/status/:orderId", billing.GetTransactionStatus)
	auth.GET("/payment/transactions", billing.ListTransactions)
	auth.POST("/payment/simulate-success/:orderId", billing.SimulateSuccess)

	// Admin
	adm := r.Group("/api/admin")
	adm.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	adm.GET("/users", admin.ListAllUsers)
	adm.GET("/users/:id", admin.GetUserDetails)
	adm.GET("/transactions", admin.ListAllTransactions)
	adm.GET("/stats", admin.GetAdminStats)
}
