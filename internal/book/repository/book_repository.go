package repository

import (
	"errors"
	"time"

	"readinglist-backend/internal/book/domain"
	"readinglist-backend/pkg/listquery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new instance of bookRepository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{
		db: db,
	}
}

func (r *bookRepository) Create(book *domain.Book) error {
	book.ID = uuid.New().String()
	book.CreatedAt = time.Now()
	book.UpdatedAt = time.Now()
	return r.db.Create(book).Error
}

func (r *bookRepository) FindByID(id string) (*domain.Book, error) {
	var book domain.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(spec listquery.Spec) ([]domain.Book, error) {
	var books []domain.Book
	err := r.filtered(spec).
		Order(sortClause(spec.Sort)).
		Offset(spec.Skip()).
		Limit(spec.Limit).
		Find(&books).Error
	return books, err
}

func (r *bookRepository) Count(spec listquery.Spec) (int64, error) {
	var total int64
	err := r.filtered(spec).Count(&total).Error
	return total, err
}

func (r *bookRepository) Update(book *domain.Book) error {
	book.UpdatedAt = time.Now()
	return r.db.Save(book).Error
}

func (r *bookRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Book{}).Error
}

func (r *bookRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// filtered applies the free-text search and the equality filters. Filter
// keys are allow-listed upstream by the query builder, never raw client
// input.
func (r *bookRepository) filtered(spec listquery.Spec) *gorm.DB {
	q := r.db.Model(&domain.Book{})
	if spec.Search != "" {
		pattern := "%" + spec.Search + "%"
		q = q.Where("title ILIKE ? OR author ILIKE ?", pattern, pattern)
	}
	for key, value := range spec.Filters {
		q = q.Where(key+" = ?", value)
	}
	return q
}

func sortClause(sort listquery.Sort) string {
	if sort == listquery.SortTop {
		return "rating DESC NULLS LAST, created_at DESC"
	}
	return "created_at DESC"
}
