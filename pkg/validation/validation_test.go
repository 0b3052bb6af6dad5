package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"readinglist-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runRules(t *testing.T, method, target, body string, rules ...Rule) *gin.Context {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	Validate(rules...)(c)
	return c
}

func fieldErrors(t *testing.T, c *gin.Context) []apperror.FieldError {
	t.Helper()
	if len(c.Errors) == 0 {
		return nil
	}
	return apperror.From(c.Errors.Last().Err).Fields
}

func TestValidateAggregatesAllFailures(t *testing.T) {
	// Two required fields missing plus one wrong type: all three must be
	// reported at once, not just the first.
	body := `{"pages": "not-a-number"}`
	c := runRules(t, http.MethodPost, "/api/books", body,
		StringField("title", false),
		StringField("author", false),
		IntField("pages", false, 1, 10000),
	)

	errs := fieldErrors(t, c)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %+v", len(errs), errs)
	}
	if !c.IsAborted() {
		t.Error("request was not aborted")
	}
}

func TestValidatePassesCleanRequest(t *testing.T) {
	body := `{"title": "Dune", "author": "Frank Herbert", "pages": 412}`
	c := runRules(t, http.MethodPost, "/api/books", body,
		StringField("title", false),
		StringField("author", false),
		IntField("pages", false, 1, 10000),
	)

	if len(c.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", c.Errors)
	}
	if c.IsAborted() {
		t.Error("clean request was aborted")
	}
}

func TestOptionalFieldsSkipWhenAbsent(t *testing.T) {
	c := runRules(t, http.MethodPost, "/api/books", `{}`,
		StringField("genre", true),
		FloatField("rating", true, 0, 5),
		IntField("published_year", true, 1450, 2100),
	)
	if len(c.Errors) != 0 {
		t.Fatalf("optional absent fields failed: %v", c.Errors)
	}
}

func TestOptionalFieldsStillTypeChecked(t *testing.T) {
	c := runRules(t, http.MethodPost, "/api/books", `{"rating": "five"}`,
		FloatField("rating", true, 0, 5),
	)
	errs := fieldErrors(t, c)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Location != LocationBody || errs[0].Field != "rating" {
		t.Errorf("unexpected field error: %+v", errs[0])
	}
}

func TestEnumField(t *testing.T) {
	c := runRules(t, http.MethodPost, "/api/books", `{"status": "abandoned"}`,
		EnumField("status", false, "to-read", "reading", "read"),
	)
	if len(fieldErrors(t, c)) != 1 {
		t.Fatal("invalid enum value passed")
	}

	c = runRules(t, http.MethodPost, "/api/books", `{"status": "reading"}`,
		EnumField("status", false, "to-read", "reading", "read"),
	)
	if len(c.Errors) != 0 {
		t.Fatalf("valid enum value failed: %v", c.Errors)
	}
}

func TestISBNField(t *testing.T) {
	tests := []struct {
		isbn string
		ok   bool
	}{
		{"0123456789", true},
		{"978-0-306-40615-7", true},
		{"978 0 306 40615 7", true},
		{"12345", false},
		{"97803064061570", false},
		{"978-0-306-4061!-7", false},
	}

	for _, tt := range tests {
		c := runRules(t, http.MethodPost, "/api/books", `{"isbn": "`+tt.isbn+`"}`,
			ISBNField("isbn", false),
		)
		failed := len(fieldErrors(t, c)) > 0
		if failed == tt.ok {
			t.Errorf("ISBN %q: failed=%v, want ok=%v", tt.isbn, failed, tt.ok)
		}
	}
}

func TestCompactISBN(t *testing.T) {
	if got := CompactISBN("978-0 306-40615-7"); got != "9780306406157" {
		t.Errorf("CompactISBN = %q", got)
	}
}

func TestMinLenField(t *testing.T) {
	c := runRules(t, http.MethodPost, "/api/reviews", `{"text": "meh"}`,
		MinLenField("text", false, 5),
	)
	if len(fieldErrors(t, c)) != 1 {
		t.Fatal("short text passed")
	}
}

func TestUUIDParam(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	Validate(UUIDParam("id"))(c)

	errs := fieldErrors(t, c)
	if len(errs) != 1 || errs[0].Location != LocationParam {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestQueryRules(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books?limit=500&sort=rating", nil)

	Validate(
		QueryInt("limit", 1, 100),
		QueryEnum("sort", "new", "top"),
	)(c)

	errs := fieldErrors(t, c)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(errs), errs)
	}
	for _, fe := range errs {
		if fe.Location != LocationQuery {
			t.Errorf("location = %q, want query", fe.Location)
		}
	}
}
