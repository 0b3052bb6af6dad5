package usecase

import (
	"context"
	"testing"

	"readinglist-backend/internal/book/domain"
	bookrepo "readinglist-backend/internal/book/repository"
	reviewdomain "readinglist-backend/internal/review/domain"
	"readinglist-backend/internal/review/dto"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/listquery"

	"gorm.io/gorm"
)

type mockReviewRepo struct {
	createFn     func(review *reviewdomain.Review) error
	findByIDFn   func(id string) (*reviewdomain.Review, error)
	listByBookFn func(bookID string, spec listquery.Spec) ([]reviewdomain.Review, error)
	countFn      func(bookID string) (int64, error)
	updateFn     func(review *reviewdomain.Review) error
	deleteFn     func(id string) error
}

func (m *mockReviewRepo) Create(review *reviewdomain.Review) error { return m.createFn(review) }
func (m *mockReviewRepo) FindByID(id string) (*reviewdomain.Review, error) {
	return m.findByIDFn(id)
}
func (m *mockReviewRepo) ListByBook(bookID string, spec listquery.Spec) ([]reviewdomain.Review, error) {
	return m.listByBookFn(bookID, spec)
}
func (m *mockReviewRepo) CountByBook(bookID string) (int64, error) { return m.countFn(bookID) }
func (m *mockReviewRepo) Update(review *reviewdomain.Review) error { return m.updateFn(review) }
func (m *mockReviewRepo) Delete(id string) error                   { return m.deleteFn(id) }

type mockBookExists struct {
	exists bool
	err    error
}

func (m *mockBookExists) Create(book *domain.Book) error                       { return nil }
func (m *mockBookExists) FindByID(id string) (*domain.Book, error)             { return nil, nil }
func (m *mockBookExists) List(spec listquery.Spec) ([]domain.Book, error)      { return nil, nil }
func (m *mockBookExists) Count(spec listquery.Spec) (int64, error)             { return 0, nil }
func (m *mockBookExists) Update(book *domain.Book) error                       { return nil }
func (m *mockBookExists) Delete(id string) error                               { return nil }
func (m *mockBookExists) Exists(id string) (bool, error)                       { return m.exists, m.err }

var _ bookrepo.BookRepository = (*mockBookExists)(nil)

func TestListForBookMissingBook(t *testing.T) {
	uc := NewReviewUsecase(&mockReviewRepo{}, &mockBookExists{exists: false})

	_, err := uc.ListForBook(context.Background(), "missing", listquery.Spec{Page: 1, Limit: 20})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestListForBookEnvelope(t *testing.T) {
	reviews := &mockReviewRepo{
		listByBookFn: func(bookID string, spec listquery.Spec) ([]reviewdomain.Review, error) {
			return []reviewdomain.Review{{ID: "r1"}, {ID: "r2"}}, nil
		},
		countFn: func(bookID string) (int64, error) { return 2, nil },
	}
	uc := NewReviewUsecase(reviews, &mockBookExists{exists: true})

	result, err := uc.ListForBook(context.Background(), "book-1", listquery.Spec{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("ListForBook: %v", err)
	}
	if len(result.Items) != 2 || result.Total != 2 || result.Pages != 1 {
		t.Errorf("envelope = %+v", result)
	}
}

func TestCreateDuplicateReviewConflicts(t *testing.T) {
	reviews := &mockReviewRepo{
		createFn: func(review *reviewdomain.Review) error {
			return gorm.ErrDuplicatedKey
		},
	}
	uc := NewReviewUsecase(reviews, &mockBookExists{exists: true})

	_, err := uc.Create(context.Background(), "reviewer-1", "book-1", dto.CreateReviewRequest{
		Text:   "great stuff",
		Rating: 5,
	})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("err = %v, want Conflict", err)
	}
}

func TestCreateSetsReviewer(t *testing.T) {
	var created *reviewdomain.Review
	reviews := &mockReviewRepo{
		createFn: func(review *reviewdomain.Review) error {
			review.ID = "review-1"
			created = review
			return nil
		},
	}
	uc := NewReviewUsecase(reviews, &mockBookExists{exists: true})

	review, err := uc.Create(context.Background(), "reviewer-1", "book-1", dto.CreateReviewRequest{
		Text:   "a classic",
		Rating: 4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil {
		t.Fatal("repository Create not called")
	}
	if review.ReviewerID != "reviewer-1" || review.BookID != "book-1" {
		t.Errorf("review = %+v", review)
	}
}

func TestCreateMissingBook(t *testing.T) {
	uc := NewReviewUsecase(&mockReviewRepo{}, &mockBookExists{exists: false})

	_, err := uc.Create(context.Background(), "reviewer-1", "missing", dto.CreateReviewRequest{
		Text:   "irrelevant",
		Rating: 3,
	})
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	reviews := &mockReviewRepo{
		updateFn: func(review *reviewdomain.Review) error { return nil },
	}
	uc := NewReviewUsecase(reviews, &mockBookExists{exists: true})

	review := &reviewdomain.Review{ID: "r1", ReviewerID: "reviewer-1", Text: "original", Rating: 3}
	newRating := 5
	updated, err := uc.Update(context.Background(), review, dto.UpdateReviewRequest{Rating: &newRating})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 5 || updated.Text != "original" {
		t.Errorf("updated = %+v", updated)
	}
}
