package tui

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/HerbHall/renewhub/internal/catalog"
)

// Page identifies which screen a location renders.
type Page int

const (
	PageHome Page = iota
	PageProducts
	PageDetail
	PageForecast
	PageRecommendations
	PageUnknown
)

// Locations of the top-level pages.
const (
	HomePath            = "/"
	ForecastPath        = "/forecast"
	RecommendationsPath = "/recommendations"
)

// String returns the page's navigation label.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageProducts:
		return "Products"
	case PageDetail:
		return "Product"
	case PageForecast:
		return "Energy Forecast"
	case PageRecommendations:
		return "Recommendations"
	default:
		return "Not Found"
	}
}

// Route is a parsed location.
type Route struct {
	Page      Page
	ProductID int
	Query     url.Values
}

// ParseRoute maps a location string onto a page.
func ParseRoute(location string) Route {
	u, err := url.Parse(location)
	if err != nil {
		return Route{Page: PageUnknown, Query: url.Values{}}
	}
	r := Route{Query: u.Query()}
	path := strings.TrimSuffix(u.Path, "/")
	switch {
	case path == "":
		r.Page = PageHome
	case path == catalog.ProductsPath:
		r.Page = PageProducts
	case strings.HasPrefix(path, catalog.ProductsPath+"/"):
		id, err := strconv.Atoi(strings.TrimPrefix(path, catalog.ProductsPath+"/"))
		if err != nil {
			r.Page = PageUnknown
			break
		}
		r.Page = PageDetail
		r.ProductID = id
	case path == ForecastPath:
		r.Page = PageForecast
	case path == RecommendationsPath:
		r.Page = PageRecommendations
	default:
		r.Page = PageUnknown
	}
	return r
}

// ProductPath is the location of a product detail page.
func ProductPath(id int) string {
	return catalog.ProductsPath + "/" + strconv.Itoa(id)
}

// Location is the client's address bar. It records every navigation so the
// user can step back.
type Location struct {
	history []string
}

// NewLocation starts at start, or at HomePath when start is empty.
func NewLocation(start string) *Location {
	if start == "" {
		start = HomePath
	}
	return &Location{history: []string{start}}
}

// Navigate pushes target as the current location.
func (l *Location) Navigate(target string) {
	l.history = append(l.history, target)
}

// Current returns the current location.
func (l *Location) Current() string {
	return l.history[len(l.history)-1]
}

// Route parses the current location.
func (l *Location) Route() Route {
	return ParseRoute(l.Current())
}

// Back returns to the previous location. It reports false at the start.
func (l *Location) Back() bool {
	if len(l.history) < 2 {
		return false
	}
	l.history = l.history[:len(l.history)-1]
	return true
}
