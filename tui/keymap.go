// Package tui implements the interactive full-screen interface.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/trakr-cli/trakr/color"
	"github.com/trakr-cli/trakr/style"
)

// statefulKeymap holds every binding and serves the subset the active state allows.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	selectOne, selectAll, clearSelection,
	acceptSearchSuggestion,
	confirm,
	openURL,
	watch,
	markWatched,
	calendar,
	remove,
	back,
	filter,
	up, down, left, right,
	top, bottom,
	playPause, finish, seekForward, seekBack, replay,
	showHelp key.Binding
}

// setState points the keymap at the bindings for s.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

// bind builds a binding whose help entry shows label and description.
func bind(label, description string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, description))
}

func newStatefulKeymap() *statefulKeymap {
	accent := style.Fg(color.Orange)

	return &statefulKeymap{
		quit:                   bind("q", "quit", "q"),
		forceQuit:              bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		selectOne:              bind("space", "select one", " "),
		selectAll:              bind("tab", "select all", "ctrl+a", "tab", "*"),
		clearSelection:         bind("backspace", "clear selection", "backspace"),
		acceptSearchSuggestion: bind("tab", "accept search suggestion", "tab"),
		confirm:                bind("enter", "confirm", "enter"),
		openURL:                bind("o", "open on trakt.tv", "o"),
		watch:                  bind(accent("w"), accent("watch"), "w"),
		markWatched:            bind("m", "mark watched", "m"),
		calendar:               bind("c", "calendar", "c"),
		remove:                 bind("d", "remove", "d"),
		back:                   bind("esc", "back", "esc"),
		filter:                 bind("/", "filter", "/"),
		up:                     bind("↑", "up", "up", "k"),
		down:                   bind("↓", "down", "down", "j"),
		left:                   bind("←", "left", "left", "h"),
		right:                  bind("→", "right", "right", "l"),
		top:                    bind("g", "top", "g"),
		bottom:                 bind("G", "bottom", "G"),
		playPause:              bind("space", "pause/resume", " "),
		finish:                 bind("f", "finish", "f", "enter"),
		seekForward:            bind("→", "forward", "right", "+"),
		seekBack:               bind("←", "rewind", "left", "-"),
		replay:                 bind("r", "restart", "r"),
		showHelp:               bind("?", "help", "?"),
	}
}

// help returns the short and full help sets for the current state.
func (k *statefulKeymap) help() (short, full []key.Binding) {
	both := func(bindings ...key.Binding) ([]key.Binding, []key.Binding) {
		return bindings, bindings
	}

	switch k.state {
	case loadingState:
		return both(k.forceQuit, k.back)
	case historyState:
		resume := withDescription(k.confirm, "resume")
		return both(resume, k.remove, k.openURL, k.calendar, k.back)
	case searchState:
		return both(withDescription(k.confirm, "search"), k.acceptSearchSuggestion, k.forceQuit)
	case resultsState:
		details := withDescription(k.confirm, "details")
		short = []key.Binding{details, k.openURL, k.calendar, k.back}
		return short, append(short, k.filter)
	case detailState:
		return both(withDescription(k.confirm, "actions"), k.openURL, k.back)
	case episodesState:
		actions := withDescription(k.confirm, "actions")
		short = []key.Binding{actions, k.selectOne, k.markWatched, k.watch, k.back}
		full = []key.Binding{actions, k.selectOne, k.selectAll, k.clearSelection, k.markWatched, k.watch, k.openURL, k.back}
		return short, full
	case actionState:
		return both(k.confirm, k.back)
	case ratingState, commentState:
		return both(withDescription(k.confirm, "submit"), withDescription(k.back, "cancel"))
	case watchState:
		return both(k.playPause, k.seekBack, k.seekForward, k.finish, k.replay, k.back)
	case calendarState:
		return both(withDescription(k.confirm, "actions"), k.openURL, k.back)
	case errorState:
		return both(k.back, k.quit)
	default:
		return both()
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.filter,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

// withDescription rebinds b with a different help description.
func withDescription(b key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys()...),
		key.WithHelp(b.Help().Key, description),
	)
}
