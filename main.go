package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopline/config"
	shoplinecron "shopline/cron"
	"shopline/database"
	bookingRepo "shopline/database/repository/booking"
	inventoryRepo "shopline/database/repository/inventory"
	messageRepo "shopline/database/repository/message"
	paymentRepo "shopline/database/repository/payment"
	shopRepo "shopline/database/repository/shop"
	timeslotRepo "shopline/database/repository/timeslot"
	userRepo "shopline/database/repository/user"
	"shopline/handlers"
	"shopline/routes"
	"shopline/services/appointment"
	"shopline/services/inventory"
	"shopline/services/message"
	"shopline/services/notification"
	"shopline/services/payment"
	"shopline/services/shop"
	"shopline/services/storage"
	"shopline/services/user"
	"shopline/utils"
	"shopline/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()

	// Repositories. Index creation is part of startup so the booking
	// uniqueness guarantee exists before any worker runs.
	users := userRepo.NewMongoUserRepo()
	shops := shopRepo.NewMongoShopRepo()
	slots := timeslotRepo.NewMongoTimeSlotRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	inventoryItems := inventoryRepo.NewMongoInventoryRepo()
	messages := messageRepo.NewMongoMessageRepo()
	payments := paymentRepo.NewMongoPaymentRepo()

	for name, ensure := range map[string]func() error{
		"users":     users.EnsureIndexes,
		"shops":     shops.EnsureIndexes,
		"timeslots": slots.EnsureIndexes,
		"bookings":  bookings.EnsureIndexes,
		"inventory": inventoryItems.EnsureIndexes,
		"messages":  messages.EnsureIndexes,
		"payments":  payments.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Fatal("failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	// Task queue client, shared by the HTTP layer (booking requests)
	// and the appointment worker (confirmation pushes).
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(redisOpt)

	// Services.
	userSvc := &user.DefaultUserService{Repo: users}
	shopSvc := &shop.DefaultShopService{Repo: shops, Slots: slots, Bookings: bookings}
	appointmentSvc := &appointment.DefaultAppointmentService{
		Users:    users,
		Shops:    shops,
		Slots:    slots,
		Bookings: bookings,
		Queue:    queueClient,
	}
	inventorySvc := &inventory.DefaultInventoryService{Repo: inventoryItems, Shops: shops}
	messageSvc := &message.DefaultMessageService{Repo: messages}
	paymentSvc := &payment.StubPaymentService{Repo: payments}

	var storageHandler *handlers.StorageHandler
	if storageSvc, err := storage.NewCloudinaryStorageService(); err != nil {
		logger.Warn("storage disabled", zap.Error(err))
	} else {
		storageHandler = handlers.NewStorageHandler(storageSvc)
	}

	// Workers.
	shutdownTimeout := time.Duration(config.AppConfig.ShutdownTimeoutSec) * time.Second

	var notifier notification.NotificationService
	if config.AppConfig.FirebaseCredentials != "" {
		fcm, err := notification.NewFCMNotificationService(context.Background(), config.AppConfig.FirebaseCredentials, users)
		if err != nil {
			logger.Fatal("failed to initialize notifications", zap.Error(err))
		}
		notifier = fcm
	}

	var notifyQueue appointment.Enqueuer
	var notifyWorker *workers.NotifyWorker
	if notifier != nil {
		notifyQueue = queueClient
		notifyWorker = workers.NewNotifyWorker(redisOpt, notifier, config.AppConfig.WorkerConcurrency, shutdownTimeout, logger)
		if err := notifyWorker.Start(); err != nil {
			logger.Fatal("failed to start notify worker", zap.Error(err))
		}
	} else {
		logger.Warn("push notifications disabled, confirmations will not be sent")
	}

	appointmentWorker := workers.NewAppointmentWorker(
		redisOpt,
		bookings,
		notifyQueue,
		config.AppConfig.WorkerConcurrency,
		shutdownTimeout,
		logger,
	)
	if err := appointmentWorker.Start(); err != nil {
		logger.Fatal("failed to start appointment worker", zap.Error(err))
	}

	cleanup := shoplinecron.StartCleanup(slots, bookings, logger)

	// HTTP layer.
	router := routes.SetupRouter(routes.Handlers{
		Users:        handlers.NewUserHandler(userSvc),
		Shops:        handlers.NewShopHandler(shopSvc),
		TimeSlots:    handlers.NewTimeSlotHandler(shopSvc),
		Availability: handlers.NewAvailabilityHandler(shopSvc),
		Appointments: handlers.NewAppointmentHandler(appointmentSvc),
		Inventory:    handlers.NewInventoryHandler(inventorySvc),
		Messages:     handlers.NewMessageHandler(messageSvc),
		Storage:      storageHandler,
		Payments:     handlers.NewPaymentHandler(paymentSvc),
	})

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Shutdown order matters: stop accepting HTTP first so no new work
	// is enqueued, then drain the workers, then release shared clients.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	appointmentWorker.Shutdown()
	if notifyWorker != nil {
		notifyWorker.Shutdown()
	}

	cleanupCtx := cleanup.Stop()
	<-cleanupCtx.Done()

	if err := queueClient.Close(); err != nil {
		logger.Error("queue client close failed", zap.Error(err))
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Error("database close failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
