package api

import (
	"net/http"
	"time"

	authDelivery "readinglist-backend/internal/auth/delivery"
	authdomain "readinglist-backend/internal/auth/domain"
	bookDelivery "readinglist-backend/internal/book/delivery"
	bookdomain "readinglist-backend/internal/book/domain"
	reviewDelivery "readinglist-backend/internal/review/delivery"
	"readinglist-backend/pkg/listquery"
	"readinglist-backend/pkg/metrics"
	"readinglist-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const maxPages = 1_000_000

func SetupRoutes(r *gin.Engine, guard *authDelivery.Guard, authHandler *authDelivery.AuthHandler, bookHandler *bookDelivery.BookHandler, reviewHandler *reviewDelivery.ReviewHandler, gatherer prometheus.Gatherer) {
	currentYear := time.Now().Year()

	bookCreateRules := []validation.Rule{
		validation.StringField("title", false),
		validation.StringField("author", false),
		validation.ISBNField("isbn", false),
		validation.IntField("published_year", false, 1450, currentYear),
		validation.StringField("genre", false),
		validation.IntField("pages", false, 1, maxPages),
		validation.EnumField("status", false, bookdomain.Statuses...),
		validation.FloatField("rating", true, 0, 5),
	}

	bookUpdateRules := []validation.Rule{
		validation.UUIDParam("id"),
		validation.StringField("title", true),
		validation.StringField("author", true),
		validation.ISBNField("isbn", true),
		validation.IntField("published_year", true, 1450, currentYear),
		validation.StringField("genre", true),
		validation.IntField("pages", true, 1, maxPages),
		validation.EnumField("status", true, bookdomain.Statuses...),
		validation.FloatField("rating", true, 0, 5),
	}

	listBooksRules := []validation.Rule{
		validation.QueryEnum("status", bookdomain.Statuses...),
		validation.QueryEnum("sort", "new", "top"),
		validation.QueryInt("page", 1, maxPages),
		validation.QueryInt("limit", 1, listquery.MaxLimit),
	}

	reviewCreateRules := []validation.Rule{
		validation.UUIDParam("id"),
		validation.MinLenField("text", false, 5),
		validation.IntField("rating", false, 1, 5),
	}

	reviewUpdateRules := []validation.Rule{
		validation.MinLenField("text", true, 5),
		validation.IntField("rating", true, 1, 5),
	}

	listReviewsRules := []validation.Rule{
		validation.UUIDParam("id"),
		validation.QueryEnum("sort", "new", "top"),
		validation.QueryInt("page", 1, maxPages),
		validation.QueryInt("limit", 1, listquery.MaxLimit),
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
		auth.GET("/me", guard.AuthRequired(), authHandler.Me)
		auth.POST("/logout", guard.AuthRequired(), authHandler.Logout)
	}

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Book routes; reads are public, mutations are ownership-gated
		books := api.Group("/books")
		{
			books.GET("", validation.Validate(listBooksRules...), bookHandler.List)
			books.GET("/:id", validation.Validate(validation.UUIDParam("id")), bookHandler.GetByID)
			books.POST("", guard.AuthRequired(), validation.Validate(bookCreateRules...), bookHandler.Create)
			books.PUT("/:id",
				guard.AuthRequired(),
				validation.Validate(bookUpdateRules...),
				guard.OwnerRequired(authdomain.KindBook),
				bookHandler.Update)
			books.DELETE("/:id",
				guard.AuthRequired(),
				validation.Validate(validation.UUIDParam("id")),
				guard.OwnerRequired(authdomain.KindBook),
				bookHandler.Delete)

			// Reviews nested under their book
			books.GET("/:id/reviews", validation.Validate(listReviewsRules...), reviewHandler.ListForBook)
			books.POST("/:id/reviews",
				guard.AuthRequired(),
				validation.Validate(reviewCreateRules...),
				reviewHandler.Create)
		}

		// Review routes addressed by review id
		reviews := api.Group("/reviews")
		{
			reviews.PUT("/:id",
				guard.AuthRequired(),
				validation.Validate(validation.UUIDParam("id")),
				guard.OwnerRequired(authdomain.KindReview),
				validation.Validate(reviewUpdateRules...),
				reviewHandler.Update)
			reviews.DELETE("/:id",
				guard.AuthRequired(),
				validation.Validate(validation.UUIDParam("id")),
				guard.OwnerRequired(authdomain.KindReview),
				reviewHandler.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Not Found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})
}
