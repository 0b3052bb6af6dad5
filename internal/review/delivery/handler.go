package delivery

import (
	"net/http"

	authDelivery "readinglist-backend/internal/auth/delivery"
	"readinglist-backend/internal/review/domain"
	"readinglist-backend/internal/review/dto"
	"readinglist-backend/internal/review/usecase"
	"readinglist-backend/pkg/apperror"
	"readinglist-backend/pkg/listquery"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewUsecase usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
	}
}

// ListForBook returns a paginated page of reviews for one book.
// GET /api/books/:id/reviews?page=&limit=&sort=new|top
func (h *ReviewHandler) ListForBook(c *gin.Context) {
	spec := listquery.Parse(c.Request.URL.Query(), listquery.Options{AllowSort: true})

	result, err := h.reviewUsecase.ListForBook(c.Request.Context(), c.Param("id"), spec)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds a review by the current principal.
// POST /api/books/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	principal, ok := authDelivery.PrincipalFrom(c)
	if !ok {
		c.Error(apperror.Unauthenticated("Unauthorized"))
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(apperror.Validation([]apperror.FieldError{{
			Field: "body", Message: "Malformed JSON body", Location: "body",
		}}))
		return
	}

	review, err := h.reviewUsecase.Create(c.Request.Context(), principal.ID, c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update applies a partial update to a review already cleared by the
// ownership guard.
// PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	review, ok := reviewFromContext(c)
	if !ok {
		c.Error(apperror.NotFound())
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.Error(apperror.Validation([]apperror.FieldError{{
			Field: "body", Message: "Malformed JSON body", Location: "body",
		}}))
		return
	}

	updated, err := h.reviewUsecase.Update(c.Request.Context(), review, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a review already cleared by the ownership guard.
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := reviewFromContext(c)
	if !ok {
		c.Error(apperror.NotFound())
		return
	}

	if err := h.reviewUsecase.Delete(c.Request.Context(), review); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func reviewFromContext(c *gin.Context) (*domain.Review, bool) {
	resource, ok := authDelivery.ResourceFrom(c)
	if !ok {
		return nil, false
	}
	review, ok := resource.(*domain.Review)
	return review, ok
}
