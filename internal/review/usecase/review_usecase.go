package usecase

import (
	"context"
	"errors"

	bookRepo "readinglist-backend/internal/book/repository"
	"readinglist-backend/internal/review/domain"
	"readinglist-backend/internal/review/dto"
	"readinglist-backend/internal/review/repository"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/database"
	"readinglist-backend/pkg/listquery"

	"gorm.io/gorm"
)

// reviewUsecase implements ReviewUsecase interface
type reviewUsecase struct {
	reviewRepo repository.ReviewRepository
	bookRepo   bookRepo.BookRepository
}

// NewReviewUsecase creates a new instance of reviewUsecase
func NewReviewUsecase(reviewRepo repository.ReviewRepository, books bookRepo.BookRepository) ReviewUsecase {
	return &reviewUsecase{
		reviewRepo: reviewRepo,
		bookRepo:   books,
	}
}

func (u *reviewUsecase) ListForBook(ctx context.Context, bookID string, spec listquery.Spec) (*listquery.Result[domain.Review], error) {
	if err := u.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	return listquery.Execute(ctx, spec,
		func(ctx context.Context) ([]domain.Review, error) {
			return u.reviewRepo.ListByBook(bookID, spec)
		},
		func(ctx context.Context) (int64, error) {
			return u.reviewRepo.CountByBook(bookID)
		},
	)
}

func (u *reviewUsecase) Create(ctx context.Context, reviewerID, bookID string, req dto.CreateReviewRequest) (*domain.Review, error) {
	if err := u.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		BookID:     bookID,
		ReviewerID: reviewerID,
		Text:       req.Text,
		Rating:     req.Rating,
	}

	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while writing to the database", func() (struct{}, error) {
		return struct{}{}, u.reviewRepo.Create(review)
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("You already reviewed this book")
		}
		return nil, apperror.From(err)
	}
	return review, nil
}

func (u *reviewUsecase) Update(ctx context.Context, review *domain.Review, req dto.UpdateReviewRequest) (*domain.Review, error) {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while updating the database", func() (struct{}, error) {
		return struct{}{}, u.reviewRepo.Update(review)
	}); err != nil {
		return nil, apperror.From(err)
	}
	return review, nil
}

func (u *reviewUsecase) Delete(ctx context.Context, review *domain.Review) error {
	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while deleting from the database", func() (struct{}, error) {
		return struct{}{}, u.reviewRepo.Delete(review.ID)
	}); err != nil {
		return apperror.From(err)
	}
	return nil
}

// requireBook checks that the reviewed book exists before any review
// operation touches the store.
func (u *reviewUsecase) requireBook(ctx context.Context, bookID string) error {
	exists, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while querying the database", func() (bool, error) {
		return u.bookRepo.Exists(bookID)
	})
	if err != nil {
		return apperror.From(err)
	}
	if !exists {
		return apperror.NotFound()
	}
	return nil
}
