package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"daxlearn/internal/adapter/api"
	"daxlearn/internal/adapter/api/handler"
	apimiddleware "daxlearn/internal/adapter/api/middleware"
	"daxlearn/internal/adapter/api/router"
	adapterrepo "daxlearn/internal/adapter/repository"
	"daxlearn/internal/domain/repository"
	"daxlearn/internal/infrastructure/cache"
	"daxlearn/internal/usecase"
	"daxlearn/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		progressRepo   repository.ProgressRepository
		userRepo       repository.UserRepository
		authMiddleware apimiddleware.Authenticator
	)

	if cfg.FirebaseProject != "" {
		var opt option.ClientOption

		serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
		if serviceAccountJSON != "" {
			opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		} else {
			serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
			if serviceAccountPath == "" {
				log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required")
			}
			opt = option.WithCredentialsFile(serviceAccountPath)
		}

		firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}

		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase Auth: %v", err)
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		progressRepo = adapterrepo.NewFirestoreProgressRepository(firestoreClient)
		userRepo = adapterrepo.NewFirestoreUserRepository(firestoreClient)
		authMiddleware = apimiddleware.NewAuthMiddleware(authClient)
	} else {
		if cfg.Environment != "development" {
			log.Fatalf("FIREBASE_PROJECT_ID is required outside development")
		}

		log.Printf("No Firebase project configured, using in-memory storage")
		progressRepo = adapterrepo.NewMemoryProgressRepository()
		userRepo = adapterrepo.NewMemoryUserRepository()
		authMiddleware = apimiddleware.NewDevAuthMiddleware()
	}

	var leaderboardCache usecase.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()

		leaderboardCache = cache.NewLeaderboardCache(redisClient, cfg.LeaderboardCacheTTL)
		log.Printf("Leaderboard cache enabled (ttl=%s)", cfg.LeaderboardCacheTTL)
	}

	progressUseCase := usecase.NewProgressUseCase(progressRepo, userRepo, leaderboardCache)
	gameUseCase := usecase.NewGameUseCase(progressRepo)

	progressHandler := handler.NewProgressHandler(progressUseCase)
	gameHandler := handler.NewGameHandler(gameUseCase)
	healthHandler := handler.NewHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware, progressHandler, gameHandler, healthHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
