package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stocker-app/stocker-api/internal/application/analytics"
	"github.com/stocker-app/stocker-api/internal/application/assignment"
	"github.com/stocker-app/stocker-api/internal/application/auth"
	"github.com/stocker-app/stocker-api/internal/application/invitation"
	"github.com/stocker-app/stocker-api/internal/application/sales"
	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/application/usecase"
	"github.com/stocker-app/stocker-api/internal/infrastructure/mailer"
	infrapdf "github.com/stocker-app/stocker-api/internal/infrastructure/pdf"
	"github.com/stocker-app/stocker-api/internal/infrastructure/postgres"
	httpRouter "github.com/stocker-app/stocker-api/internal/interfaces/http"
	"github.com/stocker-app/stocker-api/pkg/config"
	"github.com/stocker-app/stocker-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Mailer SMTP: sin SMTP_HOST la invitación solo se registra en el log.
	var invMailer invitation.Mailer
	if cfg.SMTP.Host != "" {
		invMailer = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	invitationUC := invitation.NewUseCase(invitationRepo, userRepo, invMailer, invitation.Config{
		BaseURL: cfg.Invite.BaseURL,
		TTL:     time.Duration(cfg.Invite.TTLHours) * time.Hour,
	})
	settingsUC := settings.NewUseCase(settingsRepo)
	productUC := usecase.NewProductUseCase(productRepo, historyRepo, txRunner)
	clientUC := usecase.NewClientUseCase(clientRepo)
	sellerUC := usecase.NewSellerUseCase(userRepo)
	historyUC := usecase.NewHistoryUseCase(historyRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, clientRepo, saleRepo)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, clientRepo, userRepo, infrapdf.NewMarotoReceiptGenerator())
	assignmentUC := assignment.NewUseCase(txRunner, assignmentRepo, userRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: cfg.CORS.AllowOrigins != "*",
	}))
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stocker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InvitationUC: invitationUC,
		SettingsUC:   settingsUC,
		ProductUC:    productUC,
		ClientUC:     clientUC,
		SellerUC:     sellerUC,
		HistoryUC:    historyUC,
		CreateSale:   createSaleUC,
		ReceiptUC:    receiptUC,
		AssignmentUC: assignmentUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		CookieName:   cfg.Cookie.Name,
		CookieSecure: cfg.Cookie.Secure,
		SessionTTL:   time.Duration(cfg.JWT.Expiration) * time.Minute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
