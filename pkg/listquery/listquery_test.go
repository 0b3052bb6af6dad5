package listquery

import (
	"context"
	"net/url"
	"testing"
	"time"

	"readinglist-backend/pkg/apperror"
)

func TestParsePagination(t *testing.T) {
	opts := Options{SearchKey: "q", FilterKeys: []string{"genre", "status"}}

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"limit clamped high", "limit=500", 1, 100},
		{"limit clamped low", "limit=0", 1, 1},
		{"negative limit", "limit=-5", 1, 1},
		{"page clamped", "page=0", 1, 20},
		{"negative page", "page=-2", 1, 20},
		{"garbage falls back", "page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			spec := Parse(values, opts)
			if spec.Page != tt.wantPage || spec.Limit != tt.wantLimit {
				t.Errorf("Parse(%q) = page %d limit %d, want %d %d",
					tt.query, spec.Page, spec.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	values, _ := url.ParseQuery("q=dune&genre=scifi&status=read&bogus=1&sort=top")
	spec := Parse(values, Options{SearchKey: "q", FilterKeys: []string{"genre", "status"}, AllowSort: true})

	if spec.Search != "dune" {
		t.Errorf("Search = %q", spec.Search)
	}
	if spec.Filters["genre"] != "scifi" || spec.Filters["status"] != "read" {
		t.Errorf("Filters = %v", spec.Filters)
	}
	// Unrecognized parameters are ignored, not rejected.
	if _, ok := spec.Filters["bogus"]; ok {
		t.Error("unrecognized parameter leaked into filters")
	}
	if spec.Sort != SortTop {
		t.Errorf("Sort = %v, want SortTop", spec.Sort)
	}
}

func TestParseSortDisabled(t *testing.T) {
	values, _ := url.ParseQuery("sort=top")
	spec := Parse(values, Options{})
	if spec.Sort != SortNewest {
		t.Errorf("Sort = %v, want SortNewest when sorting is disabled", spec.Sort)
	}
}

func TestSkip(t *testing.T) {
	spec := Spec{Page: 3, Limit: 20}
	if spec.Skip() != 40 {
		t.Errorf("Skip() = %d, want 40", spec.Skip())
	}
}

func TestExecutePagesArithmetic(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{45, 20, 3},
		{0, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
	}

	for _, tt := range tests {
		spec := Spec{Page: 1, Limit: tt.limit}
		result, err := Execute(context.Background(), spec,
			func(ctx context.Context) ([]string, error) { return nil, nil },
			func(ctx context.Context) (int64, error) { return tt.total, nil },
		)
		if err != nil {
			t.Fatalf("Execute(total=%d): %v", tt.total, err)
		}
		if result.Pages != tt.wantPages {
			t.Errorf("total=%d limit=%d: pages = %d, want %d", tt.total, tt.limit, result.Pages, tt.wantPages)
		}
		if result.Items == nil {
			t.Error("Items is nil, want empty slice")
		}
	}
}

func TestExecuteReturnsItems(t *testing.T) {
	spec := Spec{Page: 2, Limit: 10}
	result, err := Execute(context.Background(), spec,
		func(ctx context.Context) ([]int, error) { return []int{1, 2, 3}, nil },
		func(ctx context.Context) (int64, error) { return 13, nil },
	)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Items) != 3 || result.Total != 13 || result.Page != 2 || result.Pages != 2 || result.Limit != 10 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestExecuteTimeout(t *testing.T) {
	spec := Spec{Page: 1, Limit: 20}
	released := make(chan struct{})

	_, err := execute(context.Background(), spec,
		func(ctx context.Context) ([]int, error) {
			<-released
			return []int{1}, nil
		},
		func(ctx context.Context) (int64, error) { return 1, nil },
		20*time.Millisecond,
	)
	if !apperror.IsKind(err, apperror.KindTimeout) {
		t.Fatalf("err = %v, want Timeout", err)
	}

	// The abandoned fetch finishes later; its result must be discarded
	// without blocking or panicking.
	close(released)
	time.Sleep(10 * time.Millisecond)
}

func TestExecuteFetchError(t *testing.T) {
	spec := Spec{Page: 1, Limit: 20}
	_, err := Execute(context.Background(), spec,
		func(ctx context.Context) ([]int, error) { return nil, apperror.Internal(nil) },
		func(ctx context.Context) (int64, error) { return 0, nil },
	)
	if !apperror.IsKind(err, apperror.KindInternal) {
		t.Fatalf("err = %v, want Internal", err)
	}
}
