package catalog

import (
	"fmt"

	"github.com/HerbHall/renewhub/pkg/models"
)

// EmptyResultMessage is shown when no product passes the filters.
const EmptyResultMessage = "No products match your search criteria. Try adjusting your filters."

// BrowseView is one rendered catalog page.
type BrowseView struct {
	State      BrowseState      `json:"state"`
	Items      []models.Product `json:"items"`
	Pagination PageInfo         `json:"pagination"`
	Empty      bool             `json:"empty"`
	ShowPager  bool             `json:"show_pager"`
	TabInSync  bool             `json:"tab_in_sync"`
	Message    string           `json:"message"`
}

// BuildView filters products, slices out the current page, and describes
// the result.
func BuildView(state BrowseState, products []models.Product, pageSize int) BrowseView {
	filtered := Filter(products, state.Filter)
	items := Paginate(filtered, pageSize, state.Page)

	v := BrowseView{
		State:      state,
		Items:      items,
		Pagination: NewPageInfo(len(filtered), pageSize, state.Page),
		ShowPager:  len(filtered) > pageSize,
		TabInSync:  state.TabInSync(),
	}
	if len(items) == 0 {
		v.Empty = true
		v.Message = EmptyResultMessage
	} else {
		v.Message = fmt.Sprintf("Showing %d of %d products", len(items), len(filtered))
	}
	return v
}
