package repository

import (
	"readinglist-backend/internal/book/domain"
	"readinglist-backend/pkg/listquery"
)

// BookRepository defines the interface for book persistence.
type BookRepository interface {
	Create(book *domain.Book) error
	FindByID(id string) (*domain.Book, error)
	List(spec listquery.Spec) ([]domain.Book, error)
	Count(spec listquery.Spec) (int64, error)
	Update(book *domain.Book) error
	Delete(id string) error
	Exists(id string) (bool, error)
}
