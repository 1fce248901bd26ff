package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/market"
	"app/internal/infra/notifier"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/scheduler"
	"app/internal/security"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(cfg.LogLevel)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.RefreshToken{},
		&model.PasswordResetToken{},
		&model.Post{},
		&model.Comment{},
		&model.Candle{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	roleRepo := infraRepo.NewRoleRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	resetRepo := infraRepo.NewPasswordResetTokenRepository(gormDB)
	postRepo := infraRepo.NewPostRepository(gormDB)
	commentRepo := infraRepo.NewCommentRepository(gormDB)
	candleRepo := infraRepo.NewCandleRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//ROLE_USER / ROLE_ADMINの初期投入
	if err := roleRepo.EnsureDefaults(ctx); err != nil {
		logger.Fatal().Err(err).Msg("role seed failed")
	}

	//usecaseに渡す部品
	clock := realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	authValidator := validator.NewAuthValidator()

	tokens := security.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	revocations, err := security.NewRevocationRegistry()
	if err != nil {
		logger.Fatal().Err(err).Msg("revocation registry init failed")
	}
	defer revocations.Close()

	resetFlow := usecase.NewPasswordResetFlow(txManager, resetRepo, clock, config.ResetTokenTTL)
	mailer := notifier.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.FEURL, logger)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(
		userRepo, roleRepo, rtRepo,
		tokens, revocations,
		hasher, verifier,
		resetFlow, mailer, authValidator,
		clock, logger,
	)
	userUC := usecase.NewUserUsecase(userRepo, txManager, hasher)
	postUC := usecase.NewPostUsecase(postRepo, userRepo)
	commentUC := usecase.NewCommentUsecase(commentRepo, postRepo, userRepo)

	upbit := market.NewClient(logger)
	candleUC := usecase.NewCandleUsecase(upbit, candleRepo, logger)

	//ローソク足の定期取り込み
	candleScheduler := scheduler.NewCandleScheduler(candleUC, cfg.CandleMarkets, time.Minute, logger)
	candleScheduler.Start(ctx)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg)
	userH := handler.NewUserHandler(userUC)
	postH := handler.NewPostHandler(postUC, commentUC)
	candleH := handler.NewCandleHandler(candleUC, cfg.CandleMarkets)

	//Server起動
	e := server.New(cfg, logger, tokens, revocations)
	server.RegisterRoutes(e, authH, userH, postH, candleH)

	if err := server.Start(ctx, e, ":"+cfg.Port, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
