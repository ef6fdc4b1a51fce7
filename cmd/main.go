package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	authService "github.com/moura95/account-auth/internal/application/services/auth"
	emailService "github.com/moura95/account-auth/internal/application/services/email"
	userService "github.com/moura95/account-auth/internal/application/services/user"
	authUC "github.com/moura95/account-auth/internal/application/usecases/auth"
	emailUC "github.com/moura95/account-auth/internal/application/usecases/email"
	userUC "github.com/moura95/account-auth/internal/application/usecases/user"
	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/domain/email"
	"github.com/moura95/account-auth/internal/infra/config"
	"github.com/moura95/account-auth/internal/infra/database/postgres"
	"github.com/moura95/account-auth/internal/infra/email/sesmail"
	"github.com/moura95/account-auth/internal/infra/email/smtp"
	server "github.com/moura95/account-auth/internal/infra/http/gin"
	"github.com/moura95/account-auth/internal/infra/messaging/natsjs"
	"github.com/moura95/account-auth/internal/infra/messaging/queues"
	"github.com/moura95/account-auth/internal/infra/messaging/rabbitmq"
	"github.com/moura95/account-auth/internal/infra/metrics"
	"github.com/moura95/account-auth/internal/infra/repository/adapters"
	"github.com/moura95/account-auth/internal/infra/security/token"
	"github.com/moura95/account-auth/internal/infra/storage"
	"github.com/moura95/account-auth/internal/interfaces/http/handlers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	if err := postgres.MigrateUp(cfg.DBSource); err != nil {
		sugar.Fatalw("failed to run migrations", "error", err)
	}

	db, err := postgres.Connect(ctx, cfg.DBSource, postgres.DefaultOptions(cfg.IsProduction()))
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()
	sugar.Info("database connection established")

	avatars, avatarDir, err := setupAvatarStorage(cfg)
	if err != nil {
		sugar.Fatalw("failed to set up avatar storage", "error", err)
	}

	tokenMaker, err := token.NewMaker(cfg.TokenType, cfg.TokenSymmetricKey)
	if err != nil {
		sugar.Fatalw("failed to create token maker", "error", err)
	}

	emailQueue := setupEmailQueue(cfg, sugar)
	var publisher email.Publisher
	if emailQueue != nil {
		publisher = emailQueue
		defer func() {
			if err := emailQueue.Close(); err != nil {
				sugar.Warnw("failed to close email queue", "error", err)
			}
		}()
	}

	sender, err := setupEmailSender(cfg, sugar)
	if err != nil {
		sugar.Fatalw("failed to set up email sender", "error", err)
	}

	m := metrics.New()
	svc := buildServices(cfg, db, avatars, tokenMaker, publisher, sender, sugar)

	if emailQueue != nil {
		consumer := handlers.NewEmailConsumerHandler(svc.email, sugar)
		if err := emailQueue.StartConsuming(ctx, m.InstrumentHandler(consumer.HandleEmailMessage)); err != nil {
			sugar.Warnw("email consumer not started", "error", err)
		}
		go runEmailSweeper(ctx, cfg.EmailRetryInterval, svc.email, m, sugar)
	}

	srv := server.NewServer(cfg, server.Dependencies{
		AuthService:   svc.auth,
		UserService:   svc.user,
		TokenVerifier: svc.auth,
		Metrics:       m,
		AvatarDir:     avatarDir,
	}, sugar)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			sugar.Errorw("http server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

type services struct {
	auth  *authService.AuthService
	user  *userService.UserService
	email *emailService.EmailService
}

func buildServices(
	cfg config.Config,
	db *sqlx.DB,
	avatars avatar.Storage,
	tokenMaker token.Maker,
	publisher email.Publisher,
	sender email.Sender,
	logger *zap.SugaredLogger,
) services {
	repositories := adapters.NewRepositories(db)
	limits := avatar.Limits{MaxBytes: cfg.AvatarMaxBytes, MaxDimension: cfg.AvatarMaxDimension}

	// Auth use cases
	registerUC := authUC.NewRegisterUseCase(repositories.User, avatars, tokenMaker, cfg.AccessTokenDuration, limits, logger)
	loginUC := authUC.NewLoginUseCase(repositories.User, tokenMaker, cfg.AccessTokenDuration)
	verifyTokenUC := authUC.NewVerifyTokenUseCase(repositories.User, tokenMaker)

	// User use cases
	getUserProfileUC := userUC.NewGetUserProfileUseCase(repositories.User)
	updateUserUC := userUC.NewUpdateUserUseCase(repositories.User)
	updateAvatarUC := userUC.NewUpdateAvatarUseCase(repositories.User, avatars, limits, logger)
	deleteUserUC := userUC.NewDeleteUserUseCase(repositories.User, avatars, logger)
	listUsersUC := userUC.NewListUsersUseCase(repositories.User)

	// Email use cases
	sendWelcomeEmailUC := emailUC.NewSendWelcomeEmailUseCase(repositories.Email, publisher)
	processEmailQueueUC := emailUC.NewProcessEmailQueueUseCase(repositories.Email, sender)

	var requeueUC *emailUC.RequeuePendingEmailsUseCase
	if publisher != nil {
		requeueUC = emailUC.NewRequeuePendingEmailsUseCase(repositories.Email, publisher, 0, cfg.EmailRetryInterval)
	}

	return services{
		auth:  authService.NewAuthService(registerUC, loginUC, verifyTokenUC, sendWelcomeEmailUC, logger),
		user:  userService.NewUserService(getUserProfileUC, updateUserUC, updateAvatarUC, deleteUserUC, listUsersUC),
		email: emailService.NewEmailService(processEmailQueueUC, requeueUC),
	}
}

// setupAvatarStorage returns the store and, for local storage, the
// directory the HTTP server should expose.
func setupAvatarStorage(cfg config.Config) (avatar.Storage, string, error) {
	if cfg.AvatarStorage == config.StorageS3 {
		s3Store, err := storage.NewS3Storage(storage.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	}

	local, err := storage.NewLocalStorage(cfg.AvatarDir, cfg.AvatarBaseURL)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

func setupEmailSender(cfg config.Config, logger *zap.SugaredLogger) (email.Sender, error) {
	if cfg.EmailSender == config.SenderSES {
		return sesmail.NewSESService(sesmail.Config{Region: cfg.SESRegion, From: cfg.SMTPFrom}, logger)
	}
	return smtp.NewSMTPService(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger), nil
}

// setupEmailQueue connects to the configured broker. The service keeps
// running without one; welcome emails then stay pending in the outbox.
func setupEmailQueue(cfg config.Config, logger *zap.SugaredLogger) *queues.EmailQueue {
	switch cfg.MessageBroker {
	case config.BrokerRabbitMQ:
		conn, err := rabbitmq.NewConnection(rabbitmq.ConnectionConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: cfg.RabbitMQQueueEmail,
		}, logger)
		if err != nil {
			logger.Warnw("failed to set up rabbitmq, continuing without messaging", "error", err)
			return nil
		}
		logger.Info("rabbitmq connection established")
		return queues.NewEmailQueue(rabbitmq.NewPublisher(conn), rabbitmq.NewConsumer(conn), logger, conn.Close)

	case config.BrokerNats:
		client, err := natsjs.Connect(natsjs.Config{URL: cfg.NatsURL, Subject: cfg.NatsSubjectEmail}, logger)
		if err != nil {
			logger.Warnw("failed to set up nats, continuing without messaging", "error", err)
			return nil
		}
		logger.Info("nats connection established")
		return queues.NewEmailQueue(client, client, logger)
	}

	logger.Info("message broker disabled")
	return nil
}

func runEmailSweeper(ctx context.Context, interval time.Duration, svc *emailService.EmailService, m *metrics.Metrics, logger *zap.SugaredLogger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.RequeuePending(ctx)
			if err != nil {
				logger.Warnw("failed to requeue pending emails", "error", err)
			}
			if n > 0 {
				m.AddRequeued(n)
				logger.Infow("pending emails requeued", "count", n)
			}
		}
	}
}
