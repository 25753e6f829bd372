package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Dismiss  key.Binding
	Home     key.Binding
	Products key.Binding
	Forecast key.Binding
	Recs     key.Binding

	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	NextPage  key.Binding
	PrevPage  key.Binding
	Search    key.Binding
	Toggle    key.Binding
	MaxDown   key.Binding
	MaxUp     key.Binding
	MinDown   key.Binding
	MinUp     key.Binding
	Train     key.Binding
	NextUser  key.Binding
	NextCat   key.Binding
	MoreItems key.Binding
	LessItems key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss banner")),
	Home:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
	Products: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "products")),
	Forecast: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "forecast")),
	Recs:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "recommendations")),

	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),

	NextPage:  key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev page")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Toggle:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "toggle category")),
	MaxDown:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "max price -")),
	MaxUp:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max price +")),
	MinDown:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "min price -")),
	MinUp:     key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "min price +")),
	Train:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "train model")),
	NextUser:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "next user")),
	NextCat:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next category")),
	MoreItems: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
	LessItems: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer")),
}

// helpKeys adapts the key map to help.KeyMap for one page.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) global() []key.Binding {
	return []key.Binding{k.Home, k.Products, k.Forecast, k.Recs, k.Back, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) forPage(p Page) helpKeys {
	var local []key.Binding
	switch p {
	case PageHome:
		local = []key.Binding{k.Up, k.Down, k.Enter}
	case PageProducts:
		local = []key.Binding{k.NextTab, k.PrevTab, k.Toggle, k.Search, k.MinDown, k.MinUp, k.MaxDown, k.MaxUp, k.NextPage, k.PrevPage, k.Up, k.Down, k.Enter}
	case PageDetail:
		local = []key.Binding{k.Up, k.Down, k.Enter}
	case PageForecast:
		local = []key.Binding{k.NextPage, k.PrevPage, k.Train}
	case PageRecommendations:
		local = []key.Binding{k.NextTab, k.NextUser, k.NextCat, k.MoreItems, k.LessItems, k.Up, k.Down, k.Enter}
	}
	short := append([]key.Binding{}, local...)
	if len(short) > 4 {
		short = short[:4]
	}
	short = append(short, k.Help, k.Quit)
	return helpKeys{short: short, full: [][]key.Binding{local, k.global()}}
}
