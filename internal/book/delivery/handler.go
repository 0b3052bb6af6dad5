package delivery

import (
	"net/http"

	authDelivery "readinglist-backend/internal/auth/delivery"
	"readinglist-backend/internal/book/domain"
	"readinglist-backend/internal/book/dto"
	"readinglist-backend/internal/book/usecase"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/listquery"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	bookUsecase usecase.BookUsecase
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookUsecase usecase.BookUsecase) *BookHandler {
	return &BookHandler{
		bookUsecase: bookUsecase,
	}
}

// List returns a filtered, sorted, paginated page of books.
// GET /api/books?q=&genre=&status=&sort=&page=&limit=
func (h *BookHandler) List(c *gin.Context) {
	spec := listquery.Parse(c.Request.URL.Query(), listquery.Options{
		SearchKey:  "q",
		FilterKeys: []string{"genre", "status"},
		AllowSort:  true,
	})

	result, err := h.bookUsecase.List(c.Request.Context(), spec)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID returns one book.
// GET /api/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	book, err := h.bookUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create adds a book owned by the current principal.
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	principal, ok := authDelivery.PrincipalFrom(c)
	if !ok {
		c.Error(apperror.Unauthenticated("Unauthorized"))
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(apperror.Validation([]apperror.FieldError{{
			Field: "body", Message: "Malformed JSON body", Location: "body",
		}}))
		return
	}

	book, err := h.bookUsecase.Create(c.Request.Context(), principal.ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update applies a partial update to a book already cleared by the
// ownership guard.
// PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	book, ok := bookFromContext(c)
	if !ok {
		c.Error(apperror.NotFound())
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(apperror.Validation([]apperror.FieldError{{
			Field: "body", Message: "Malformed JSON body", Location: "body",
		}}))
		return
	}

	updated, err := h.bookUsecase.Update(c.Request.Context(), book, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a book already cleared by the ownership guard.
// DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	book, ok := bookFromContext(c)
	if !ok {
		c.Error(apperror.NotFound())
		return
	}

	if err := h.bookUsecase.Delete(c.Request.Context(), book); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bookFromContext reuses the resource fetched by the ownership guard
// instead of re-fetching it.
func bookFromContext(c *gin.Context) (*domain.Book, bool) {
	resource, ok := authDelivery.ResourceFrom(c)
	if !ok {
		return nil, false
	}
	book, ok := resource.(*domain.Book)
	return book, ok
}
