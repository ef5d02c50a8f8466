package tui

type state int

const (
	loadingState state = iota
	monitorState
	errorState
)
