package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/photomarket-backend/internal/config"
	"github.com/ignatzorin/photomarket-backend/internal/db"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/photomarket-backend/internal/http/router"
	"github.com/ignatzorin/photomarket-backend/internal/infrastructure/events"
	"github.com/ignatzorin/photomarket-backend/internal/infrastructure/payment"
	"github.com/ignatzorin/photomarket-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/handler"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/service"
	"github.com/ignatzorin/photomarket-backend/internal/storage"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/acceptance"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/bid"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/chat"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/dispute"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/escrow"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/payout"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/profile"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/request"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/review"
	"github.com/ignatzorin/photomarket-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка загрузки конфигурации")
	}
	logger.Init(cfg.LogLevel, cfg.Env == "development")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, os.DirFS(cfg.MigrationsPath)); err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка миграций")
	}

	// Внешние участники.
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	payments := payment.NewBridgeClient(cfg.PaymentBridgeURL, cfg.PaymentBridgeAPIKey, cfg.PaymentBridgeTimeout)

	files, err := newFileStorage(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить файловое хранилище")
	}

	publisher := newPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия брокера событий")
		}
	}()

	limiterStore, redisClient, err := middleware.NewRateLimitStore(cfg.RedisURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить rate limiter")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Репозитории.
	txManager := persistence.NewTxManager(dbConn)
	requestRepo := persistence.NewRequestRepositoryAdapter(dbConn)
	bidRepo := persistence.NewBidRepositoryAdapter(dbConn)
	chatRepo := persistence.NewChatRepositoryAdapter(dbConn)
	profileRepo := persistence.NewProfileRepositoryAdapter(dbConn)
	escrowRepo := persistence.NewEscrowRepositoryAdapter(dbConn)
	payoutRepo := persistence.NewPayoutRepositoryAdapter(dbConn)
	acceptanceRepo := persistence.NewAcceptanceRepositoryAdapter(dbConn)
	reviewRepo := persistence.NewReviewRepositoryAdapter(dbConn)
	reportRepo := persistence.NewReportRepositoryAdapter(dbConn)
	notificationRepo := persistence.NewNotificationRepositoryAdapter(dbConn)

	// Вебсокеты и уведомления.
	hub := ws.NewHub()
	go hub.Run(ctx)
	notifications := service.NewNotificationService(notificationRepo, hub, publisher)

	// Сценарии.
	maxBid := valueobject.Money(cfg.MaxBidAmount)
	sendMessageUC := chat.NewSendMessageUseCase(chatRepo, notifications)

	handlers := httpRouter.Handlers{
		Request: handler.NewRequestHandler(
			request.NewCreateRequestUseCase(requestRepo),
			request.NewGetRequestUseCase(requestRepo),
			request.NewListOpenRequestsUseCase(requestRepo),
			request.NewListMyRequestsUseCase(requestRepo),
			request.NewApproveDeliveryUseCase(txManager, requestRepo, profileRepo, escrowRepo, notifications),
		),
		Delivery: handler.NewDeliveryHandler(
			request.NewDeliverWorkUseCase(txManager, requestRepo, notifications),
			files,
			cfg.MaxUploadSizeMB,
		),
		Bid: handler.NewBidHandler(
			bid.NewPlaceBidUseCase(txManager, requestRepo, bidRepo, notifications, maxBid),
			bid.NewCancelBidUseCase(bidRepo),
			bid.NewListRequestBidsUseCase(requestRepo, bidRepo),
			bid.NewListMyBidsUseCase(bidRepo),
		),
		Acceptance: handler.NewAcceptanceHandler(
			acceptance.NewInitiateAcceptanceUseCase(requestRepo, bidRepo, acceptanceRepo, payments, cfg.AcceptanceIntentTTL),
			acceptance.NewInitiateBookingUseCase(profileRepo, acceptanceRepo, payments, cfg.AcceptanceIntentTTL),
			acceptance.NewConfirmAcceptanceUseCase(txManager, requestRepo, bidRepo, chatRepo, profileRepo, escrowRepo, acceptanceRepo, notifications),
		),
		Review: handler.NewReviewHandler(
			review.NewSubmitReviewUseCase(txManager, requestRepo, reviewRepo, profileRepo, notifications),
			review.NewListReviewsUseCase(reviewRepo),
			dispute.NewFileReportUseCase(txManager, requestRepo, reportRepo, notifications),
		),
		Profile: handler.NewProfileHandler(
			profile.NewGetMeUseCase(profileRepo),
			profile.NewGetProfileUseCase(profileRepo),
			profile.NewUpdateMeUseCase(profileRepo),
			profile.NewResetCounterUseCase(profileRepo),
		),
		Payout: handler.NewPayoutHandler(
			payout.NewRequestPayoutUseCase(profileRepo, payoutRepo),
			payout.NewListMyPayoutsUseCase(payoutRepo),
			payout.NewConnectAccountUseCase(profileRepo, payments),
			escrow.NewListMyPaymentsUseCase(escrowRepo),
		),
		Chat: handler.NewChatHandler(
			chat.NewListUnifiedRoomsUseCase(chatRepo),
			chat.NewStartDirectChatUseCase(chatRepo),
			chat.NewListMessagesUseCase(chatRepo),
			sendMessageUC,
			chat.NewSendToUnifiedUseCase(chatRepo, sendMessageUC),
			chat.NewMarkReadUseCase(chatRepo),
		),
		Notification: handler.NewNotificationHandler(notifications),
		Admin: handler.NewAdminHandler(
			request.NewDisableRequestUseCase(txManager, requestRepo, profileRepo, escrowRepo, notifications),
			request.NewListByStatusUseCase(requestRepo),
			acceptance.NewApproveBookingUseCase(txManager, requestRepo, chatRepo, profileRepo, notifications),
			dispute.NewResolveDisputeUseCase(txManager, requestRepo, profileRepo, escrowRepo, notifications),
			dispute.NewListReportsUseCase(reportRepo),
			payout.NewCompletePayoutUseCase(txManager, payoutRepo, profileRepo, payments, notifications),
			payout.NewListPendingPayoutsUseCase(payoutRepo),
		),
		WS:     handler.NewWSHandler(hub, tokens, cfg.AllowedOrigins),
		Health: handler.NewHealthHandler(dbConn),
	}

	engine := httpRouter.SetupRouter(cfg, handlers, tokens, limiterStore)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

func newFileStorage(ctx context.Context, cfg *config.Config) (gateway.FileStorage, error) {
	if cfg.StorageDriver == config.StorageDriverMinio {
		minioStorage, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:      cfg.Minio.Endpoint,
			AccessKey:     cfg.Minio.AccessKey,
			SecretKey:     cfg.Minio.SecretKey,
			Bucket:        cfg.Minio.Bucket,
			UseSSL:        cfg.Minio.UseSSL,
			PublicBaseURL: cfg.Minio.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return minioStorage, nil
	}

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir, cfg.PublicFilesURL, cfg.MaxUploadSizeMB)
	if err != nil {
		return nil, err
	}
	return localStorage, nil
}

// newPublisher без RABBITMQ_URL возвращает заглушку: события просто не уходят наружу.
func newPublisher(cfg *config.Config) gateway.EventPublisher {
	if cfg.RabbitMQURL == "" {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
	if err != nil {
		logger.Log.WithError(err).Warn("main: RabbitMQ недоступен, события не публикуются")
		return events.NoopPublisher{}
	}
	return publisher
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Warn("main: ошибка закрытия базы")
	}
}
