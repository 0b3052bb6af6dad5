package usecase

import (
	"context"

	"readinglist-backend/internal/book/domain"
	"readinglist-backend/internal/book/dto"
	"readinglist-backend/pkg/listquery"
)

// BookUsecase drives book reads and ownership-gated mutations. Callers of
// Update and Delete pass the resource already fetched by the ownership
// guard; the read and the write are two separate store operations (known
// time-of-check/time-of-use gap, preserved from the source design).
type BookUsecase interface {
	List(ctx context.Context, spec listquery.Spec) (*listquery.Result[domain.Book], error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, ownerID string, req dto.CreateBookRequest) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book, req dto.UpdateBookRequest) (*domain.Book, error)
	Delete(ctx context.Context, book *domain.Book) error
}
