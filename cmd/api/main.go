package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/propamit/propamit-api/internal/api"
	"github.com/propamit/propamit-api/internal/auth"
	"github.com/propamit/propamit-api/internal/infrastructure/config"
	mongodb "github.com/propamit/propamit-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/propamit/propamit-api/internal/infrastructure/db/redis"
	"github.com/propamit/propamit-api/internal/infrastructure/mail"
	"github.com/propamit/propamit-api/internal/infrastructure/queue"
	"github.com/propamit/propamit-api/internal/infrastructure/storage"
	"github.com/propamit/propamit-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Propamit API
// @version 1.0
// @description Vehicle document management backend: accounts, applications, uploads and admin tooling.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	admins, err := auth.ParseAdminList(cfg.AdminCredentials)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ADMIN_CREDENTIALS")
	}
	log.Info().Int("admins", admins.Len()).Msg("admin allow-list loaded")

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- AWS (SES mail, S3 uploads) ---
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("aws configuration failed")
	}

	sesMailer := mail.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.AWS.MailFrom, cfg.SiteURL, log)
	mailQueue := queue.NewMailDispatcher(0, sesMailer, log)
	mailQueue.Start(ctx)

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket, cfg.AWS.Region)

	e := api.NewRouter(api.Deps{
		DB:     db,
		Redis:  rdb,
		Issuer: auth.NewTokenIssuer(cfg.JWTSecret),
		Admins: admins,
		Mailer: mailQueue,
		Store:  store,
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
