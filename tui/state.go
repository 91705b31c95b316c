// Package tui implements the interactive full-screen interface.
package tui

type state int

const (
	loadingState state = iota
	errorState
	historyState
	searchState
	resultsState
	detailState
	episodesState
	actionState
	ratingState
	commentState
	watchState
	calendarState
)
