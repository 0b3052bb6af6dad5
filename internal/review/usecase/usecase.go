package usecase

import (
	"context"

	"readinglist-backend/internal/review/domain"
	"readinglist-backend/internal/review/dto"
	"readinglist-backend/pkg/listquery"
)

// ReviewUsecase drives review reads and ownership-gated mutations.
type ReviewUsecase interface {
	ListForBook(ctx context.Context, bookID string, spec listquery.Spec) (*listquery.Result[domain.Review], error)
	Create(ctx context.Context, reviewerID, bookID string, req dto.CreateReviewRequest) (*domain.Review, error)
	Update(ctx context.Context, review *domain.Review, req dto.UpdateReviewRequest) (*domain.Review, error)
	Delete(ctx context.Context, review *domain.Review) error
}
