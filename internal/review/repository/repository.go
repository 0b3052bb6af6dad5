package repository

import (
	"readinglist-backend/internal/review/domain"
	"readinglist-backend/pkg/listquery"
)

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(review *domain.Review) error
	FindByID(id string) (*domain.Review, error)
	ListByBook(bookID string, spec listquery.Spec) ([]domain.Review, error)
	CountByBook(bookID string) (int64, error)
	Update(review *domain.Review) error
	Delete(id string) error
}
