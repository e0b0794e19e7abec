package tui

import "github.com/charmbracelet/bubbles/key"

// ResultsKeyMap binds keys for the default grid-navigation mode. Other
// modes (Search/Filter/Command/...) read raw key text instead, since
// they're capturing free-form input rather than single-key commands.
type ResultsKeyMap struct {
	Up, Down, Left, Right     key.Binding
	PageUp, PageDown          key.Binding
	Home, End                 key.Binding
	FirstColumn, LastColumn   key.Binding
	Query                     key.Binding
	Search, Filter, Fuzzy     key.Binding
	ColumnSearch              key.Binding
	NextMatch, PrevMatch      key.Binding
	Help, Debug, PrettyQuery  key.Binding
	History, Jump             key.Binding
	SortAsc, SortDesc         key.Binding
	HideColumn, UnhideColumns key.Binding
	PinColumn, UnpinColumn    key.Binding
	MoveColLeft, MoveColRight key.Binding
	Paste, Undo               key.Binding
	ExportCSV, ExportJSON     key.Binding
	NextBuffer, PrevBuffer    key.Binding
	CloseBuffer               key.Binding
	Quit, ForceQuit           key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first row")),
	End:      key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last row")),

	FirstColumn: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "first column")),
	LastColumn:  key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "last column")),

	Query:        key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "edit query")),
	Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Fuzzy:        key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fuzzy filter")),
	ColumnSearch: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "column search")),
	NextMatch:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	PrevMatch:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),

	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Debug:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "debug log")),
	PrettyQuery: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pretty query")),
	History:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
	Jump:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "jump to row")),

	SortAsc:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort asc")),
	SortDesc: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort desc")),

	HideColumn:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide column")),
	UnhideColumns:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "unhide all")),
	PinColumn:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin column")),
	UnpinColumn:    key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "unpin column")),
	MoveColLeft:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move column left")),
	MoveColRight:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move column right")),

	// yy/yr/yc (yank cell/row/column) are a two-key sequence handled
	// directly in handleResultsKey's pending-yank state, since a
	// key.Binding only ever matches one keypress at a time.
	Paste: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
	Undo:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),

	ExportCSV:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	ExportJSON: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export json")),

	NextBuffer:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next buffer")),
	PrevBuffer:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev buffer")),
	CloseBuffer: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close buffer")),

	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
}
