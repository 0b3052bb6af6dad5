package repository

import (
	"errors"
	"time"

	"readinglist-backend/internal/review/domain"
	"readinglist-backend/pkg/listquery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new instance of reviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{
		db: db,
	}
}

func (r *reviewRepository) Create(review *domain.Review) error {
	review.ID = uuid.New().String()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id string) (*domain.Review, error) {
	var review domain.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByBook(bookID string, spec listquery.Spec) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.
		Where("book_id = ?", bookID).
		Order(sortClause(spec.Sort)).
		Offset(spec.Skip()).
		Limit(spec.Limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByBook(bookID string) (int64, error) {
	var total int64
	err := r.db.Model(&domain.Review{}).Where("book_id = ?", bookID).Count(&total).Error
	return total, err
}

func (r *reviewRepository) Update(review *domain.Review) error {
	review.UpdatedAt = time.Now()
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.Review{}).Error
}

func sortClause(sort listquery.Sort) string {
	if sort == listquery.SortTop {
		return "rating DESC, created_at DESC"
	}
	return "created_at DESC"
}
