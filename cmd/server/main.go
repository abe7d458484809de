package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"sevensmile-backend/internal/auth"
	"sevensmile-backend/internal/cache"
	"sevensmile-backend/internal/config"
	"sevensmile-backend/internal/database"
	"sevensmile-backend/internal/db"
	"sevensmile-backend/internal/handlers"
	"sevensmile-backend/internal/health"
	h "sevensmile-backend/internal/http"
	"sevensmile-backend/internal/middleware"
	"sevensmile-backend/internal/monitoring"
	"sevensmile-backend/internal/repositories"
	"sevensmile-backend/internal/services"
	"sevensmile-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional. Without it the app serves everything from
	// PostgreSQL, just without the information cache and auth cache.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("[Redis] Not available, running without cache: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("Migrations failed: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	informationRepo := repositories.NewInformationRepository(pool)
	mergeRepo := repositories.NewMergeRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	tourRepo := repositories.NewTourBookingRepository(pool)
	transferRepo := repositories.NewTransferBookingRepository(pool)
	voucherRepo := repositories.NewVoucherRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo, totpRepo)
	informationService := services.NewInformationService(informationRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, paymentRepo)
	mergeService := services.NewMergeService(informationRepo, mergeRepo, paymentRepo, invoiceService)
	orderService := services.NewOrderService(orderRepo, tourRepo, transferRepo, informationRepo)
	bookingService := services.NewBookingService(tourRepo, transferRepo, orderRepo)
	voucherService := services.NewVoucherService(voucherRepo, tourRepo, transferRepo)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, invoiceService)
	reportService := services.NewReportService(tourRepo, transferRepo, orderRepo)
	documentService := services.NewDocumentService(voucherService, invoiceService, paymentRepo, tourRepo, transferRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		invoiceRepo,
	)

	// Optional report archival to S3-compatible object storage
	if cfg.Archive.Enabled {
		archiveCtx, archiveCancel := context.WithTimeout(context.Background(), 15*time.Second)
		uploader, err := storage.NewArchiveUploader(archiveCtx, storage.ArchiveConfig{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
		})
		archiveCancel()
		if err != nil {
			log.Printf("[Archive] Not available, reports will not be archived: %v", err)
		} else {
			reportService.SetArchiver(uploader)
			log.Printf("[Archive] Report archival enabled (bucket %s)", cfg.Archive.Bucket)
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	informationHandler := handlers.NewInformationHandler(informationService)
	mergeHandler := handlers.NewMergeHandler(mergeService)
	orderHandler := handlers.NewOrderHandler(orderService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	voucherHandler := handlers.NewVoucherHandler(voucherService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	reportHandler := handlers.NewReportHandler(reportService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	totpHandler := handlers.NewTOTPHandler(totpService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		userHandler,
		informationHandler,
		mergeHandler,
		orderHandler,
		bookingHandler,
		voucherHandler,
		paymentHandler,
		invoiceHandler,
		reportHandler,
		documentHandler,
		totpHandler,
		razorpayHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router))))

	// Ops dashboard with live system stats and alerts on a separate port
	go monitoring.NewMonitoringServer(pool, 9090).Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
