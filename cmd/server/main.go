package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brakwaku/iCenCookiesLLC/internal/auth"
	"github.com/brakwaku/iCenCookiesLLC/internal/config"
	"github.com/brakwaku/iCenCookiesLLC/internal/handler"
	"github.com/brakwaku/iCenCookiesLLC/internal/mailer"
	"github.com/brakwaku/iCenCookiesLLC/internal/payment"
	"github.com/brakwaku/iCenCookiesLLC/internal/repository"
	"github.com/brakwaku/iCenCookiesLLC/internal/usecase"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	productRepo := repository.NewProductMongoRepository(db)
	reviewRepo := repository.NewReviewMongoRepository(ctx, &logger, db)
	orderRepo := repository.NewOrderMongoRepository(db)
	prefsRepo := repository.NewPreferencesMongoRepository(ctx, &logger, db)

	codec := auth.NewCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	mail := mailer.NewMailer(&logger)
	payments := payment.NewClient(cfg.StripeKey)

	authUsecase := usecase.NewAuthUsecase(userRepo, codec, mail, cfg.ResetTokenTTL, cfg.ResetURL, &logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	productUsecase := usecase.NewProductUsecase(productRepo)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, productRepo, &logger)
	orderUsecase := usecase.NewOrderUsecase(orderRepo)
	prefsUsecase := usecase.NewPreferencesUsecase(prefsRepo)

	server := handler.NewServer(
		cfg,
		&logger,
		codec,
		userRepo,
		productRepo,
		reviewRepo,
		authUsecase,
		userUsecase,
		productUsecase,
		reviewUsecase,
		orderUsecase,
		prefsUsecase,
		payments,
	)

	logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting HTTP server")
	if err := http.ListenAndServe(cfg.HTTPAddr, server.Router()); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
