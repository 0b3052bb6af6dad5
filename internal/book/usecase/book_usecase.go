package usecase

import (
	"context"

	"readinglist-backend/internal/book/domain"
	"readinglist-backend/internal/book/dto"
	"readinglist-backend/internal/book/repository"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/database"
	"readinglist-backend/pkg/listquery"
	"readinglist-backend/pkg/validation"
)

// bookUsecase implements BookUsecase interface
type bookUsecase struct {
	bookRepo repository.BookRepository
}

// NewBookUsecase creates a new instance of bookUsecase
func NewBookUsecase(bookRepo repository.BookRepository) BookUsecase {
	return &bookUsecase{
		bookRepo: bookRepo,
	}
}

func (u *bookUsecase) List(ctx context.Context, spec listquery.Spec) (*listquery.Result[domain.Book], error) {
	return listquery.Execute(ctx, spec,
		func(ctx context.Context) ([]domain.Book, error) {
			return u.bookRepo.List(spec)
		},
		func(ctx context.Context) (int64, error) {
			return u.bookRepo.Count(spec)
		},
	)
}

func (u *bookUsecase) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	book, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while querying the database", func() (*domain.Book, error) {
		return u.bookRepo.FindByID(id)
	})
	if err != nil {
		return nil, apperror.From(err)
	}
	if book == nil {
		return nil, apperror.NotFound()
	}
	return book, nil
}

func (u *bookUsecase) Create(ctx context.Context, ownerID string, req dto.CreateBookRequest) (*domain.Book, error) {
	book := &domain.Book{
		OwnerID:       ownerID,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          validation.CompactISBN(req.ISBN),
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
		Pages:         req.Pages,
		Status:        req.Status,
		Rating:        req.Rating,
	}

	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while writing to the database", func() (struct{}, error) {
		return struct{}{}, u.bookRepo.Create(book)
	}); err != nil {
		return nil, apperror.From(err)
	}
	return book, nil
}

func (u *bookUsecase) Update(ctx context.Context, book *domain.Book, req dto.UpdateBookRequest) (*domain.Book, error) {
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		book.ISBN = validation.CompactISBN(*req.ISBN)
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Status != nil {
		book.Status = *req.Status
	}
	if req.Rating != nil {
		book.Rating = req.Rating
	}

	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while updating the database", func() (struct{}, error) {
		return struct{}{}, u.bookRepo.Update(book)
	}); err != nil {
		return nil, apperror.From(err)
	}
	return book, nil
}

func (u *bookUsecase) Delete(ctx context.Context, book *domain.Book) error {
	if _, err := database.WithTimeout(ctx, database.DefaultTimeout, "Request timed out while deleting from the database", func() (struct{}, error) {
		return struct{}{}, u.bookRepo.Delete(book.ID)
	}); err != nil {
		return apperror.From(err)
	}
	return nil
}
