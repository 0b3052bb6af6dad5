package main

import (
	"context"
	"log"

	api "readinglist-backend/cmd/api"
	authDelivery "readinglist-backend/internal/auth/delivery"
	authdomain "readinglist-backend/internal/auth/domain"
	authRepo "readinglist-backend/internal/auth/repository"
	authUsecase "readinglist-backend/internal/auth/usecase"
	bookDelivery "readinglist-backend/internal/book/delivery"
	bookdomain "readinglist-backend/internal/book/domain"
	bookRepo "readinglist-backend/internal/book/repository"
	bookUsecase "readinglist-backend/internal/book/usecase"
	reviewDelivery "readinglist-backend/internal/review/delivery"
	reviewdomain "readinglist-backend/internal/review/domain"
	reviewRepo "readinglist-backend/internal/review/repository"
	reviewUsecase "readinglist-backend/internal/review/usecase"
	"readinglist-backend/pkg/config"
	"readinglist-backend/pkg/database"
	"readinglist-backend/pkg/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &bookdomain.Book{}, &reviewdomain.Review{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	bookRepository := bookRepo.NewBookRepository(db)
	reviewRepository := reviewRepo.NewReviewRepository(db)

	// Session token service; the signing secret is read-only after startup
	tokens := token.NewService(cfg.JWTSecret, cfg.SessionValidity, cfg.IsProduction())

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, tokens)
	bookUsecaseInstance := bookUsecase.NewBookUsecase(bookRepository)
	reviewUsecaseInstance := reviewUsecase.NewReviewUsecase(reviewRepository, bookRepository)

	// Ownership guard: one registry entry per resource kind
	registry := authDelivery.Registry{
		authdomain.KindBook: func(ctx context.Context, id string) (authdomain.OwnedResource, error) {
			book, err := bookRepository.FindByID(id)
			if err != nil || book == nil {
				return nil, err
			}
			return book, nil
		},
		authdomain.KindReview: func(ctx context.Context, id string) (authdomain.OwnedResource, error) {
			review, err := reviewRepository.FindByID(id)
			if err != nil || review == nil {
				return nil, err
			}
			return review, nil
		},
	}
	guard := authDelivery.NewGuard(tokens, registry)

	// Initialize HTTP handler
	handler := api.NewHandler(cfg,
		guard,
		authDelivery.NewAuthHandler(authUsecaseInstance, tokens, cfg),
		bookDelivery.NewBookHandler(bookUsecaseInstance),
		reviewDelivery.NewReviewHandler(reviewUsecaseInstance),
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
