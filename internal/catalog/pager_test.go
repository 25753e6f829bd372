package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HerbHall/renewhub/internal/testutil"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{10, 8, 2},
		{16, 8, 2},
		{17, 8, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	products := testutil.SampleProducts()

	tests := []struct {
		name string
		page int
		want []int
	}{
		{"first page", 1, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"last partial page", 2, []int{9, 10}},
		{"beyond last page", 3, []int{}},
		{"page zero", 0, []int{}},
		{"negative page", -1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutil.ProductIDs(Paginate(products, DefaultPageSize, tt.page))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paginate(page=%d) mismatch (-want +got):\n%s", tt.page, diff)
			}
		})
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	items := testutil.NumberedProducts(21)
	for page := 1; page <= 4; page++ {
		first := Paginate(items, 5, page)
		second := Paginate(items, 5, page)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("page %d differs between calls:\n%s", page, diff)
		}
	}
}

func TestPaginate_CoversEveryItemOnce(t *testing.T) {
	items := testutil.NumberedProducts(21)
	seen := map[int]int{}
	for page := 1; page <= TotalPages(len(items), 5); page++ {
		for _, p := range Paginate(items, 5, page) {
			seen[p.ID]++
		}
	}
	if len(seen) != 21 {
		t.Fatalf("saw %d distinct items, want 21", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("item %d appeared %d times", id, n)
		}
	}
}

func TestPaginate_DoesNotAliasTail(t *testing.T) {
	items := []int{1, 2, 3, 4}
	page := Paginate(items, 2, 1)
	_ = append(page, 99)
	if items[2] != 3 {
		t.Errorf("append to page overwrote source: items = %v", items)
	}
}

func TestNewPageInfo(t *testing.T) {
	got := NewPageInfo(10, 8, 2)
	want := PageInfo{Page: 2, PageSize: 8, Total: 10, TotalPages: 2}
	if got != want {
		t.Errorf("NewPageInfo() = %+v, want %+v", got, want)
	}
}
