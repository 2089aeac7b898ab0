package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/photomarket-backend/internal/config"
	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/handler"
	"github.com/ignatzorin/photomarket-backend/internal/service"
)

type Handlers struct {
	Request      *handler.RequestHandler
	Delivery     *handler.DeliveryHandler
	Bid          *handler.BidHandler
	Acceptance   *handler.AcceptanceHandler
	Review       *handler.ReviewHandler
	Profile      *handler.ProfileHandler
	Payout       *handler.PayoutHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	Admin        *handler.AdminHandler
	WS           *handler.WSHandler
	Health       *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens *service.TokenManager, limiterStore limiter.Store) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	if cfg.StorageDriver == config.StorageDriverLocal {
		r.StaticFS("/files", http.Dir(cfg.UploadDir))
	}

	api := r.Group("/api")
	api.GET("/ws", h.WS.Handle)

	// Публичные маршруты
	public := api.Group("/")
	public.Use(middleware.RateLimitMiddleware(limiterStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		public.GET("/requests", h.Request.ListOpen)
		public.GET("/users/:id", middleware.UUIDValidator("id"), h.Profile.Get)
		public.GET("/users/:id/reviews", middleware.UUIDValidator("id"), h.Review.ListForUser)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.Use(middleware.RateLimitMiddleware(limiterStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		protected.GET("/profile", h.Profile.GetMe)
		protected.PUT("/profile", h.Profile.UpdateMe)
		protected.POST("/profile/counters/:name/reset", h.Profile.ResetCounter)

		protected.POST("/requests", h.Request.Create)
		protected.GET("/requests/mine", h.Request.ListMine)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), h.Request.Get)
		protected.POST("/requests/:id/deliver", middleware.UUIDValidator("id"), h.Delivery.Deliver)
		protected.POST("/requests/:id/approve", middleware.UUIDValidator("id"), h.Request.Approve)

		protected.POST("/requests/:id/bids", middleware.UUIDValidator("id"), h.Bid.Place)
		protected.GET("/requests/:id/bids", middleware.UUIDValidator("id"), h.Bid.ListForRequest)
		protected.GET("/bids/mine", h.Bid.ListMine)
		protected.POST("/bids/:id/cancel", middleware.UUIDValidator("id"), h.Bid.Cancel)

		protected.POST("/requests/:id/accept", middleware.UUIDValidator("id"), h.Acceptance.Accept)
		protected.POST("/bookings", h.Acceptance.Book)
		protected.POST("/acceptances/confirm", h.Acceptance.Confirm)

		protected.POST("/requests/:id/reviews", middleware.UUIDValidator("id"), h.Review.Submit)
		protected.POST("/requests/:id/reports", middleware.UUIDValidator("id"), h.Review.Report)

		protected.GET("/chats", h.Chat.ListRooms)
		protected.POST("/chats", h.Chat.Start)
		protected.GET("/chats/rooms/:id/messages", middleware.UUIDValidator("id"), h.Chat.ListMessages)
		protected.POST("/chats/rooms/:id/messages", middleware.UUIDValidator("id"), h.Chat.Send)
		protected.POST("/chats/rooms/:id/read", middleware.UUIDValidator("id"), h.Chat.MarkRead)
		protected.POST("/chats/unified/:key/messages", h.Chat.SendUnified)

		protected.GET("/notifications", h.Notification.List)
		protected.GET("/notifications/unread-count", h.Notification.UnreadCount)
		protected.POST("/notifications/read-all", h.Notification.MarkAllRead)
		protected.POST("/notifications/:id/read", middleware.UUIDValidator("id"), h.Notification.MarkRead)

		protected.GET("/payouts", h.Payout.ListMine)
		protected.POST("/payouts", h.Payout.Request)
		protected.POST("/payouts/connect", h.Payout.ConnectAccount)
		protected.GET("/payments", h.Payout.ListPayments)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.AdminOnly())
	{
		admin.GET("/requests", h.Admin.ListRequests)
		admin.POST("/requests/:id/disable", middleware.UUIDValidator("id"), h.Admin.DisableRequest)
		admin.POST("/requests/:id/approve-booking", middleware.UUIDValidator("id"), h.Admin.ApproveBooking)
		admin.POST("/requests/:id/resolve", middleware.UUIDValidator("id"), h.Admin.ResolveDispute)
		admin.GET("/reports", h.Admin.ListReports)
		admin.GET("/payouts", h.Admin.ListPendingPayouts)
		admin.POST("/payouts/:id/complete", middleware.UUIDValidator("id"), h.Admin.CompletePayout)
	}

	return r
}
