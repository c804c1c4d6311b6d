package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mx70/mx70-api/internal/config"
	"github.com/mx70/mx70-api/internal/domain/auth"
	"github.com/mx70/mx70-api/internal/domain/bonus"
	"github.com/mx70/mx70-api/internal/domain/credit"
	"github.com/mx70/mx70-api/internal/domain/dashboard"
	"github.com/mx70/mx70-api/internal/domain/gig"
	"github.com/mx70/mx70-api/internal/domain/lesson"
	"github.com/mx70/mx70-api/internal/domain/notification"
	"github.com/mx70/mx70-api/internal/domain/payment"
	"github.com/mx70/mx70-api/internal/domain/selfpromo"
	"github.com/mx70/mx70-api/internal/domain/submission"
	"github.com/mx70/mx70-api/internal/domain/upload"
	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/middleware"
	"github.com/mx70/mx70-api/internal/pkg/clock"
	"github.com/mx70/mx70-api/internal/pkg/database"
	"github.com/mx70/mx70-api/internal/pkg/email"
	"github.com/mx70/mx70-api/internal/pkg/imaging"
	"github.com/mx70/mx70-api/internal/pkg/jwt"
	pkgpayment "github.com/mx70/mx70-api/internal/pkg/payment"
	pkgresponse "github.com/mx70/mx70-api/internal/pkg/response"
	"github.com/mx70/mx70-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting MX70 API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, refresh token revocation disabled")
		redis = nil
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Object storage ----------
	var store storage.Storage
	usingLocalStorage := cfg.S3AccessKeyID == ""
	if usingLocalStorage {
		store, err = storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to init local storage")
		}
		log.Info().Str("path", cfg.LocalStoragePath).Msg("Using local file storage")
	} else {
		store, err = storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3Bucket:    cfg.S3BucketName,
			S3AccessKey: cfg.S3AccessKeyID,
			S3SecretKey: cfg.S3AccessKeySecret,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to init S3 storage")
		}
	}

	// ---------- Email ----------
	var emails *email.Service
	if cfg.SendGridAPIKey != "" {
		emails = email.NewService(email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  "MX70",
		})
		defer emails.Close()
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	gigRepo := gig.NewRepository(db)
	submissionRepo := submission.NewRepository(db)
	selfPromoRepo := selfpromo.NewRepository(db)
	lessonRepo := lesson.NewRepository(db)
	uploadRepo := upload.NewRepository(db)

	// ---------- Services ----------
	engine := bonus.NewEngine(bonus.DefaultConfig())

	creditService := credit.NewService(creditRepo, credit.Config{
		GigPostAmount:   cfg.GigPostCredit,
		SelfPromoAmount: cfg.SelfPromoCredit,
		MonthlyCap:      cfg.MonthlySelfPromoCap,
		CapWindow:       30 * 24 * time.Hour,
		ExpiryMonths:    cfg.CreditExpiryMonths,
		CappedSources: map[credit.Source]bool{
			credit.SourceSelfPromo: true,
		},
	}, clock.New())

	authService := auth.NewService(userRepo, jwtService, redis)
	if emails != nil {
		authService.SetEmailer(emails, cfg.PublicURL+"/dashboard")
	}

	gigService := gig.NewService(gigRepo, userRepo, creditService, cfg.MinimumGigBudget)
	lessonService := lesson.NewService(lessonRepo)
	submissionService := submission.NewService(submissionRepo, gigRepo, userRepo, engine, lessonService)
	selfPromoService := selfpromo.NewService(selfPromoRepo, userRepo, creditService, cfg.SelfPromoMinViews, cfg.SelfPromoMinLikes)
	uploadService := upload.NewService(uploadRepo, store, imaging.NewProcessor(imaging.DefaultConfig()))

	providers := pkgpayment.NewFactory()
	providers.Register(pkgpayment.ProviderMock, pkgpayment.NewMockProvider())
	provider, err := providers.Get(pkgpayment.ProviderMock)
	if err != nil {
		log.Fatal().Err(err).Msg("Payment provider not configured")
	}

	fees := payment.Fees{
		BusinessRate: cfg.BusinessFeeRate,
		ClipperRate:  cfg.ClipperFeeRate,
		BasePay:      cfg.BasePay,
	}
	paymentService := payment.NewService(provider, submissionRepo, gigRepo, fees)

	dashboardService := dashboard.NewService(gigRepo, submissionRepo, creditService, lessonService, fees)

	// ---------- Notifications ----------
	hub := notification.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	dispatcher := notification.NewDispatcher(hub, emails, userRepo, cfg.PublicURL)
	submissionService.SetNotifier(dispatcher)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	gigHandler := gig.NewHandler(gigService)
	submissionHandler := submission.NewHandler(submissionService)
	selfPromoHandler := selfpromo.NewHandler(selfPromoService)
	lessonHandler := lesson.NewHandler(lessonService)
	creditHandler := credit.NewHandler(creditService)
	paymentHandler := payment.NewHandler(paymentService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	uploadHandler := upload.NewHandler(uploadService)
	wsHandler := notification.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)
	requireBusiness := middleware.RequireBusiness()
	requireClipper := middleware.RequireClipper()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress); token arrives as query param
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		token := req.URL.Query().Get("token")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(wsHandler.WebSocket)).ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if usingLocalStorage {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalStoragePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/gigs", gigHandler.Routes(authMiddleware, requireBusiness))
		r.Mount("/submissions", submissionHandler.Routes(authMiddleware, requireClipper, requireBusiness))
		r.Mount("/selfpromos", selfPromoHandler.Routes(authMiddleware, requireBusiness))
		r.Mount("/lessons", lessonHandler.Routes(authMiddleware, requireClipper))
		r.Mount("/credits", creditHandler.Routes(authMiddleware))
		r.Mount("/payments", paymentHandler.Routes(authMiddleware, requireBusiness))
		r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
		r.Mount("/uploads", uploadHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
