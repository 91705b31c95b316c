// Package mini implements a lightweight, minimalist interface for media search and tracking.
package mini

import (
	"os"

	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/util"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	cachedResults  map[string][]*trakt.SearchResult
	cachedEpisodes map[string][]*trakt.Episode

	query         string
	selectedMedia trakt.Media

	// watchQueue is what the watch state plays through, resumeProgress the
	// starting point of its first entry.
	watchQueue     []trakt.Media
	resumeProgress float64
}

func newMini() *mini {
	return &mini{
		statesHistory:  util.Stack[state]{},
		cachedResults:  make(map[string][]*trakt.SearchResult),
		cachedEpisodes: make(map[string][]*trakt.Episode),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

func Run(options *Options) error {
	m := newMini()
	m.state = mediaSearchState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case mediaSearchState:
		return m.handleMediaSearchState()
	case mediaSelectState:
		return m.handleMediaSelectState()
	case actionSelectState:
		return m.handleActionSelectState()
	case episodeSelectState:
		return m.handleEpisodeSelectState()
	case watchState:
		return m.handleWatchState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
