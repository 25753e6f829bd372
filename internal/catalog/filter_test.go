package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HerbHall/renewhub/internal/testutil"
	"github.com/HerbHall/renewhub/pkg/models"
)

func TestMatches(t *testing.T) {
	panel := testutil.NewProduct(
		testutil.WithName("Solar Panel 300W"),
		testutil.WithCategory(models.CategorySolar),
		testutil.WithPrice(250),
	)

	tests := []struct {
		name   string
		filter FilterState
		want   bool
	}{
		{"default filter", DefaultFilter(), true},
		{"search case-insensitive", FilterState{SearchTerm: "SOLAR", PriceRange: PriceRange{0, 5000}}, true},
		{"search substring", FilterState{SearchTerm: "nel 3", PriceRange: PriceRange{0, 5000}}, true},
		{"search miss", FilterState{SearchTerm: "wind", PriceRange: PriceRange{0, 5000}}, false},
		{"price at min bound", FilterState{PriceRange: PriceRange{250, 300}}, true},
		{"price at max bound", FilterState{PriceRange: PriceRange{0, 250}}, true},
		{"price below range", FilterState{PriceRange: PriceRange{251, 5000}}, false},
		{"price above range", FilterState{PriceRange: PriceRange{0, 249.99}}, false},
		{"category selected", FilterState{PriceRange: PriceRange{0, 5000}, Categories: []models.Category{models.CategoryWind, models.CategorySolar}}, true},
		{"category not selected", FilterState{PriceRange: PriceRange{0, 5000}, Categories: []models.Category{models.CategoryWind}}, false},
		{"all rules must hold", FilterState{SearchTerm: "solar", PriceRange: PriceRange{0, 100}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(panel, tt.filter); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_SampleScenarios(t *testing.T) {
	products := testutil.SampleProducts()

	tests := []struct {
		name   string
		filter func(FilterState) FilterState
		want   []int
	}{
		{
			name:   "no filter keeps all in order",
			filter: func(f FilterState) FilterState { return f },
			want:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		{
			name:   "upper-case search",
			filter: func(f FilterState) FilterState { f.SearchTerm = "SOLAR"; return f },
			want:   []int{1, 4, 6, 10},
		},
		{
			name:   "price up to 200",
			filter: func(f FilterState) FilterState { f.PriceRange = PriceRange{0, 200}; return f },
			want:   []int{5, 7, 10},
		},
		{
			name:   "solar category",
			filter: func(f FilterState) FilterState { return f.WithCategory(models.CategorySolar, true) },
			want:   []int{1, 4, 6, 10},
		},
		{
			name:   "nothing matches",
			filter: func(f FilterState) FilterState { f.SearchTerm = "fusion"; return f },
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutil.ProductIDs(Filter(products, tt.filter(DefaultFilter())))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_NeverNil(t *testing.T) {
	if got := Filter(nil, DefaultFilter()); got == nil {
		t.Error("Filter(nil) = nil, want empty slice")
	}
}

// Widening any criterion never removes a product from the result.
func TestFilter_MonotonicWidening(t *testing.T) {
	products := testutil.SampleProducts()
	narrow := FilterState{
		SearchTerm: "solar",
		PriceRange: PriceRange{100, 900},
		Categories: []models.Category{models.CategorySolar},
	}

	wider := []struct {
		name string
		f    FilterState
	}{
		{"clear search", FilterState{PriceRange: narrow.PriceRange, Categories: narrow.Categories}},
		{"wider price", FilterState{SearchTerm: narrow.SearchTerm, PriceRange: PriceRange{0, 5000}, Categories: narrow.Categories}},
		{"extra category", FilterState{SearchTerm: narrow.SearchTerm, PriceRange: narrow.PriceRange, Categories: []models.Category{models.CategorySolar, models.CategoryWind}}},
		{"no categories", FilterState{SearchTerm: narrow.SearchTerm, PriceRange: narrow.PriceRange, Categories: []models.Category{}}},
	}

	base := Filter(products, narrow)
	for _, tt := range wider {
		t.Run(tt.name, func(t *testing.T) {
			got := map[int]bool{}
			for _, p := range Filter(products, tt.f) {
				got[p.ID] = true
			}
			for _, p := range base {
				if !got[p.ID] {
					t.Errorf("product %d dropped after widening", p.ID)
				}
			}
		})
	}
}

func TestNewPriceRange_SwapsReversedEnds(t *testing.T) {
	r := NewPriceRange(900, 100)
	if r.Min != 100 || r.Max != 900 {
		t.Errorf("NewPriceRange(900, 100) = %+v, want {100 900}", r)
	}
}

func TestWithCategory_CanonicalOrder(t *testing.T) {
	f := DefaultFilter().
		WithCategory(models.CategoryEfficiency, true).
		WithCategory(models.CategorySolar, true).
		WithCategory(models.CategorySolar, true).
		WithCategory(models.CategoryWind, true).
		WithCategory(models.CategoryWind, false)

	want := []models.Category{models.CategorySolar, models.CategoryEfficiency}
	if diff := cmp.Diff(want, f.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}
