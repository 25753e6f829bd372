// Package tui is the interactive terminal client. It keeps a location bar
// like a browser address bar and renders the page the location names.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/internal/datasource"
	"github.com/HerbHall/renewhub/internal/forecast"
	"github.com/HerbHall/renewhub/internal/health"
	"github.com/HerbHall/renewhub/internal/recommend"
	"github.com/HerbHall/renewhub/pkg/models"
)

// Status bar messages.
const (
	catalogFailedMsg  = "Failed to load products. Please try again later."
	forecastFailedMsg = "Failed to load forecast data. Please try again later."
	trainFailedMsg    = "Failed to train the forecast model. Please try again later."
	recsFailedMsg     = "Failed to load recommendations. Please try again later."
)

// Options configure a client session.
type Options struct {
	// Start is the initial location. Empty starts at HomePath.
	Start string
	// PageSize is the number of products per catalog page.
	PageSize int
	Logger   *zap.Logger
}

// Model is the root bubbletea model.
type Model struct {
	src       datasource.Source
	logger    *zap.Logger
	loc       *Location
	banner    *health.Banner
	forecasts *forecast.Loader
	recLoader *recommend.Loader
	pageSize  int

	route     Route
	requestID int
	loading   bool
	err       error
	status    string
	initCmd   tea.Cmd

	homeCursor int

	store     *catalog.Store
	ctrl      *catalog.Controller
	products  []models.Product
	cursor    int
	search    textinput.Model
	searching bool

	detail   catalog.Detail
	notFound bool

	periods  int
	forecast forecast.View

	query  recommend.Query
	recTab int
	recs   recommend.View

	spinner spinner.Model
	help    help.Model
	width   int
	height  int
}

// NewModel creates a client over src and mounts the start location.
func NewModel(src datasource.Source, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorLeaf)

	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.FullKey = helpKeyStyle
	h.Styles.FullDesc = helpDescStyle

	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.CharLimit = 64
	ti.Width = 32

	m := Model{
		src:       src,
		logger:    logger,
		loc:       NewLocation(opts.Start),
		banner:    health.NewBanner(src, logger.Named("health")),
		forecasts: forecast.NewLoader(src, logger.Named("forecast")),
		recLoader: recommend.NewLoader(src, logger.Named("recommend")),
		pageSize:  pageSize,
		periods:   forecast.DefaultPeriods,
		query:     recommend.DefaultQuery(),
		search:    ti,
		spinner:   s,
		help:      h,
		status:    "Ready",
	}
	m.initCmd = m.mount()
	return m
}

// Init starts the health check and the first page load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, checkHealth(m.banner), m.initCmd)
}

// Location returns the location bar's current value.
func (m Model) Location() string { return m.loc.Current() }

// Route returns the page being shown.
func (m Model) Route() Route { return m.route }

// Loading reports whether a load is outstanding for the current page.
func (m Model) Loading() bool { return m.loading }

// Status returns the status bar text.
func (m Model) Status() string { return m.status }

// BannerVisible reports whether the backend error banner is showing.
func (m Model) BannerVisible() bool { return m.banner.Visible() }

// BrowseState returns the catalog state of the products page.
func (m Model) BrowseState() (catalog.BrowseState, bool) {
	if m.ctrl == nil || m.route.Page != PageProducts {
		return catalog.BrowseState{}, false
	}
	return m.ctrl.State(), true
}

// BrowseView renders the products page over the loaded catalog.
func (m Model) BrowseView() (catalog.BrowseView, bool) {
	if m.ctrl == nil || m.route.Page != PageProducts {
		return catalog.BrowseView{}, false
	}
	return m.ctrl.View(m.products), true
}

// mount starts a fresh visit of the current location. Every visit gets a
// new request id, so results for an earlier visit are ignored.
func (m *Model) mount() tea.Cmd {
	m.route = m.loc.Route()
	m.requestID++
	m.err = nil
	m.cursor = 0
	m.loading = false
	m.searching = false
	m.search.Blur()

	var cmd tea.Cmd
	switch m.route.Page {
	case PageProducts:
		m.store = catalog.NewStore(m.src, m.logger.Named("catalog"))
		m.ctrl = catalog.NewController(m.route.Query, m.loc, m.pageSize)
		m.products = nil
		m.search.SetValue("")
		m.status = "Loading products..."
		cmd = loadCatalog(m.store, m.requestID)

	case PageDetail:
		m.store = catalog.NewStore(m.src, m.logger.Named("catalog"))
		m.detail = catalog.Detail{}
		m.notFound = false
		m.status = "Loading product..."
		cmd = loadDetail(m.src, m.store, m.route.ProductID, m.requestID, m.logger.Named("detail"))

	case PageForecast:
		m.status = "Loading forecast..."
		cmd = loadForecast(m.forecasts, m.periods, m.requestID)

	case PageRecommendations:
		m.status = "Loading recommendations..."
		cmd = loadRecommendations(m.recLoader, m.query, m.requestID)

	case PageHome:
		m.status = "Ready"

	default:
		m.status = "Page not found"
	}

	if cmd == nil {
		return nil
	}
	m.loading = true
	return tea.Batch(m.spinner.Tick, cmd)
}

// open navigates to target and mounts it.
func (m *Model) open(target string) tea.Cmd {
	m.loc.Navigate(target)
	return m.mount()
}

// reload reissues the current page's load without a new visit.
func (m *Model) reload(cmd func(requestID int) tea.Cmd) tea.Cmd {
	m.requestID++
	m.loading = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, cmd(m.requestID))
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case healthMsg:
		if !msg.result.Healthy {
			m.logger.Warn("backend unavailable at startup", zap.Error(msg.result.Err))
		}
		return m, nil

	case catalogMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.loading = false
		m.products = msg.products
		if msg.err != nil {
			m.err = msg.err
			m.status = catalogFailedMsg
			return m, nil
		}
		m.status = m.ctrl.View(m.products).Message
		return m, nil

	case detailMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.loading = false
		switch {
		case errors.Is(msg.err, catalog.ErrProductNotFound):
			m.notFound = true
			m.status = "Product not found"
		case msg.err != nil:
			m.err = msg.err
			m.status = catalogFailedMsg
		default:
			m.detail = msg.detail
			m.status = msg.detail.Product.Name
		}
		return m, nil

	case forecastMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.status = forecastFailedMsg
			if msg.trained != nil && !msg.trained.Success {
				m.status = trainFailedMsg
			}
			return m, nil
		}
		m.forecast = msg.view
		m.status = msg.view.Title
		if msg.trained != nil {
			m.status = msg.trained.Message
		}
		return m, nil

	case recsMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.status = recsFailedMsg
			return m, nil
		}
		m.recs = msg.view
		m.status = msg.view.User.Profile.Label()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.banner.Dismiss()
		return m, nil
	case key.Matches(msg, keys.Back):
		if m.loc.Back() {
			return m, m.mount()
		}
		return m, nil
	case key.Matches(msg, keys.Home):
		return m, m.open(HomePath)
	case key.Matches(msg, keys.Products):
		return m, m.open(catalog.ProductsPath)
	case key.Matches(msg, keys.Forecast):
		return m, m.open(ForecastPath)
	case key.Matches(msg, keys.Recs):
		return m, m.open(RecommendationsPath)
	}

	switch m.route.Page {
	case PageHome:
		return m.updateHome(msg)
	case PageProducts:
		if m.loading {
			return m, nil
		}
		return m.updateProducts(msg)
	case PageDetail:
		if m.loading {
			return m, nil
		}
		return m.updateDetail(msg)
	case PageForecast:
		if m.loading {
			return m, nil
		}
		return m.updateForecast(msg)
	case PageRecommendations:
		if m.loading {
			return m, nil
		}
		return m.updateRecommendations(msg)
	}
	return m, nil
}

// View renders the client.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderNav(), locationStyle.Render("renewhub:"+m.loc.Current()))
	if m.banner.Visible() {
		sections = append(sections, bannerStyle.Render(m.banner.Message()+"  (x to dismiss)"))
	}

	if m.loading {
		sections = append(sections, "", m.spinner.View()+" "+m.status)
	} else {
		sections = append(sections, "", m.renderPage())
	}

	sections = append(sections, "", statusStyle.Render(m.status), m.help.View(keys.forPage(m.route.Page)))
	return strings.Join(sections, "\n")
}

func (m Model) renderNav() string {
	pages := []Page{PageHome, PageProducts, PageForecast, PageRecommendations}
	current := m.route.Page
	if current == PageDetail {
		current = PageProducts
	}
	parts := make([]string, 0, len(pages)+1)
	parts = append(parts, titleStyle.Render("RenewHub "))
	for _, p := range pages {
		if p == current {
			parts = append(parts, navActiveStyle.Render(p.String()))
		} else {
			parts = append(parts, navInactiveStyle.Render(p.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderPage() string {
	switch m.route.Page {
	case PageHome:
		return m.renderHome()
	case PageProducts:
		return m.renderProducts()
	case PageDetail:
		return m.renderDetail()
	case PageForecast:
		return m.renderForecast()
	case PageRecommendations:
		return m.renderRecommendations()
	default:
		return errorStyle.Render("Page not found.") + "\n" + mutedStyle.Render("Press H to go home.")
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}
