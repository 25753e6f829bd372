package catalog

import (
	"net/url"

	"github.com/HerbHall/renewhub/pkg/models"
)

// ProductsPath is the location of the catalog page.
const ProductsPath = "/products"

// CategoryParam is the query parameter carrying the active category tab.
const CategoryParam = "category"

// Tab is the active category tab: TabAll or a single category.
type Tab string

// TabAll selects every category.
const TabAll Tab = "all"

// Tabs returns every tab in display order.
func Tabs() []Tab {
	tabs := []Tab{TabAll}
	for _, c := range models.Categories() {
		tabs = append(tabs, Tab(c))
	}
	return tabs
}

// ParseTab returns the tab named by s and whether it is known.
func ParseTab(s string) (Tab, bool) {
	if Tab(s) == TabAll {
		return TabAll, true
	}
	if c, ok := models.ParseCategory(s); ok {
		return Tab(c), true
	}
	return "", false
}

// Category returns the category a tab selects. TabAll selects none.
func (t Tab) Category() (models.Category, bool) {
	if t == TabAll {
		return "", false
	}
	return models.ParseCategory(string(t))
}

// Label returns the tab's display label.
func (t Tab) Label() string {
	if t == TabAll {
		return "All Products"
	}
	return models.Category(t).Label()
}

// CategoryURL returns the location that represents tab.
func CategoryURL(tab Tab) string {
	c, ok := tab.Category()
	if !ok {
		return ProductsPath
	}
	q := url.Values{}
	q.Set(CategoryParam, string(c))
	return ProductsPath + "?" + q.Encode()
}

// BrowseState is the complete, serializable state of a catalog visit.
type BrowseState struct {
	ActiveTab Tab         `json:"active_tab"`
	Filter    FilterState `json:"filter"`
	Page      int         `json:"page"`
}

// NewBrowseState returns the state of a fresh visit with no filters.
func NewBrowseState() BrowseState {
	return BrowseState{
		ActiveTab: TabAll,
		Filter:    DefaultFilter(),
		Page:      1,
	}
}

// Mount seeds the state of a new visit from the location's query. A known
// category other than "all" selects that tab and checks only that category;
// anything else starts on the "all" tab with no categories checked.
func Mount(query url.Values) BrowseState {
	s := NewBrowseState()
	tab, ok := ParseTab(query.Get(CategoryParam))
	if !ok || tab == TabAll {
		return s
	}
	c, _ := tab.Category()
	s.ActiveTab = tab
	s.Filter = s.Filter.WithCategory(c, true)
	return s
}

// SelectCategoryTab switches to tab. The category set becomes empty for
// TabAll or exactly the tab's category otherwise, and the page resets. The
// returned target is the location the caller must navigate to.
func (s BrowseState) SelectCategoryTab(tab Tab) (BrowseState, string) {
	s.ActiveTab = tab
	s.Filter.Categories = []models.Category{}
	if c, ok := tab.Category(); ok {
		s.Filter.Categories = []models.Category{c}
	}
	s.Page = 1
	return s, CategoryURL(tab)
}

// ToggleCategoryCheckbox sets one category's membership and resets the page.
// The active tab and the location are left alone.
func (s BrowseState) ToggleCategoryCheckbox(c models.Category, checked bool) BrowseState {
	s.Filter = s.Filter.WithCategory(c, checked)
	s.Page = 1
	return s
}

// SetSearchTerm replaces the search term and resets the page.
func (s BrowseState) SetSearchTerm(term string) BrowseState {
	s.Filter.SearchTerm = term
	s.Page = 1
	return s
}

// SetPriceRange replaces the price range and resets the page.
func (s BrowseState) SetPriceRange(r PriceRange) BrowseState {
	s.Filter.PriceRange = NewPriceRange(r.Min, r.Max)
	s.Page = 1
	return s
}

// SetPage moves to page n. Pages below 1 are raised to 1.
func (s BrowseState) SetPage(n int) BrowseState {
	if n < 1 {
		n = 1
	}
	s.Page = n
	return s
}

// TabInSync reports whether the active tab still describes the category
// set. Checkbox toggles can make the two diverge; filtering always follows
// the category set.
func (s BrowseState) TabInSync() bool {
	c, ok := s.ActiveTab.Category()
	if !ok {
		return len(s.Filter.Categories) == 0
	}
	return len(s.Filter.Categories) == 1 && s.Filter.Categories[0] == c
}

// Navigator is the location store the controller writes on tab changes.
type Navigator interface {
	Navigate(target string)
}

// Controller owns the browse state of one catalog visit and writes tab
// changes through to the location.
type Controller struct {
	state    BrowseState
	nav      Navigator
	pageSize int
}

// NewController mounts a visit from the location's query.
func NewController(query url.Values, nav Navigator, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		state:    Mount(query),
		nav:      nav,
		pageSize: pageSize,
	}
}

// State returns the current browse state.
func (c *Controller) State() BrowseState { return c.state }

// PageSize returns the number of products per page.
func (c *Controller) PageSize() int { return c.pageSize }

// SelectCategoryTab applies the tab change and navigates in the same call.
func (c *Controller) SelectCategoryTab(tab Tab) {
	next, target := c.state.SelectCategoryTab(tab)
	c.state = next
	if c.nav != nil {
		c.nav.Navigate(target)
	}
}

// ToggleCategoryCheckbox sets a category's membership in the filter set.
func (c *Controller) ToggleCategoryCheckbox(cat models.Category, checked bool) {
	c.state = c.state.ToggleCategoryCheckbox(cat, checked)
}

// SetSearchTerm replaces the search term.
func (c *Controller) SetSearchTerm(term string) {
	c.state = c.state.SetSearchTerm(term)
}

// SetPriceRange replaces the price range.
func (c *Controller) SetPriceRange(r PriceRange) {
	c.state = c.state.SetPriceRange(r)
}

// SetPage moves to page n.
func (c *Controller) SetPage(n int) {
	c.state = c.state.SetPage(n)
}

// View renders the current state over products.
func (c *Controller) View(products []models.Product) BrowseView {
	return BuildView(c.state, products, c.pageSize)
}
