// Package tui implements the interactive full-screen interface.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/internal/ui"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

// statefulBubble is the root model: child components plus the workflow position.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC    spinner.Model
	inputC      textinput.Model
	fieldInputC textinput.Model // Shared by the rating and comment prompts
	historyC    list.Model
	resultsC    list.Model
	episodesC   list.Model
	actionC     list.Model
	calendarC   list.Model
	progressC   progress.Model
	detailC     viewport.Model
	helpC       help.Model

	selectedMedia    trakt.Media
	selectedEpisodes map[*trakt.Episode]struct{} // set
	detailRatings    mo.Option[*trakt.RatingStats]

	// watch tracking
	scrobbler    *trakt.Scrobbler
	watchPaused  bool
	watchStarted bool

	foundResultsChannel  chan []*trakt.SearchResult
	foundEpisodesChannel chan []*trakt.Episode
	calendarChannel      chan []*calendarEntry
	ratingsChannel       chan mo.Option[*trakt.RatingStats]
	errorChannel         chan error

	progressStatus string

	lastError error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError records err and switches to the error screen.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState switches the workflow state and the keymap together.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering where we came from so back can return.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Transient states stay out of the back stack
	if !lo.Contains([]state{
		loadingState,
		watchState,
		ratingState,
		commentState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState pops the navigation stack and restores that state.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize passes new terminal dimensions down to every child component.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range b.lists() {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.progressC.Width = listWidth
	b.fieldInputC.Width = listWidth

	// Leave room for the help footer below the viewport.
	b.detailC.Width = styledWidth
	b.detailC.Height = styledHeight - 2

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// lists returns every list component, for operations applied across all of them.
func (b *statefulBubble) lists() []*list.Model {
	return []*list.Model{&b.historyC, &b.resultsC, &b.episodesC, &b.actionC, &b.calendarC}
}

// stateList returns the list component backing s, or nil for states
// without one.
func (b *statefulBubble) stateList(s state) *list.Model {
	switch s {
	case historyState:
		return &b.historyC
	case resultsState:
		return &b.resultsC
	case episodesState:
		return &b.episodesC
	case actionState:
		return &b.actionC
	case calendarState:
		return &b.calendarC
	default:
		return nil
	}
}

// startLoading flips the busy flag and spins up the list spinners.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.resultsC.StartSpinner(), b.episodesC.StartSpinner(), b.calendarC.StartSpinner())
}

// stopLoading clears the busy flag and halts the list spinners.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.resultsC.StopSpinner()
	b.episodesC.StopSpinner()
	b.calendarC.StopSpinner()
	return nil
}

// actionItemsFor assembles the verb menu for the given media. People get no
// tracking verbs since the sync endpoints do not accept them.
func (b *statefulBubble) actionItemsFor(media trakt.Media) []list.Item {
	var items []list.Item

	switch media.Kind() {
	case trakt.KindShow:
		items = append(items, &listItem{internal: &actionItem{verb: episodesAction, name: "Browse episodes", hint: "List every episode of the show"}})
	case trakt.KindMovie, trakt.KindEpisode:
		items = append(items, &listItem{internal: &actionItem{verb: watchAction, name: "Watch now", hint: "Start a check-in"}})
	}

	if media.Kind() != trakt.KindPerson {
		items = append(items,
			&listItem{internal: &actionItem{verb: rateAction, name: "Rate", hint: "Submit a rating from 1 to 10"}},
			&listItem{internal: &actionItem{verb: watchlistAction, name: "Add to watchlist", hint: "Save for later"}},
			&listItem{internal: &actionItem{verb: watchedAction, name: "Mark as watched", hint: "Add a play to the history"}},
			&listItem{internal: &actionItem{verb: collectAction, name: "Add to collection", hint: "Record as owned"}},
			&listItem{internal: &actionItem{verb: commentAction, name: "Comment", hint: "Post a comment, 5 words minimum"}},
		)
	}

	if trakt.WebURL(media) != "" {
		items = append(items, &listItem{internal: &actionItem{verb: openAction, name: "Open on trakt.tv", hint: "View in the browser"}})
	}

	return items
}

// newBubble assembles the root model with every child component configured.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		foundResultsChannel:  make(chan []*trakt.SearchResult),
		foundEpisodesChannel: make(chan []*trakt.Episode),
		calendarChannel:      make(chan []*calendarEntry),
		ratingsChannel:       make(chan mo.Option[*trakt.RatingStats]),
		errorChannel:         make(chan error),

		selectedEpisodes: make(map[*trakt.Episode]struct{}),

		notifier: &ui.Model{},
	}

	// Each list carries its own accent so the header tells the views apart.
	makeList := func(title string, accent lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = true
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(accent).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search movies & shows (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.fieldInputC = textinput.New()
	bubble.fieldInputC.CharLimit = 500

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.detailC = viewport.New(0, 0)

	bubble.historyC = makeList("Continue Watching", style.Yellow)
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.resultsC = makeList("Search Results", style.Lavender)
	bubble.resultsC.SetStatusBarItemName("result", "results")

	bubble.episodesC = makeList("Episodes", style.Peach)
	bubble.episodesC.SetStatusBarItemName("episode", "episodes")

	bubble.actionC = makeList("Actions", style.Mauve)
	bubble.actionC.SetStatusBarItemName("action", "actions")

	bubble.calendarC = makeList("Upcoming Episodes", style.Blue)
	bubble.calendarC.SetStatusBarItemName("entry", "entries")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
