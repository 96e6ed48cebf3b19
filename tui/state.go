package tui

type state int

const (
	historyState state = iota
	inputState
	loadingState
	playingState
	resumeState
	confirmClearState
	errorState
)
