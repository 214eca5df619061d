// Package search drives interactive cocktail lookups: it debounces typing,
// tags every request with a generation, and drops responses that arrive after
// a newer request was issued.
package search

import "github.com/smileynet/cocktails/internal/cocktail"

// State is the visible phase of the search.
type State int

const (
	StateIdle    State = iota // Nothing searched, or text cleared.
	StateLoading              // A request is outstanding.
	StateResults              // The latest request returned cocktails.
	StateEmpty                // The latest request matched nothing.
	StateError                // The latest request failed.
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResults:
		return "results"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Renderer receives state changes. Calls happen on the UI goroutine.
type Renderer interface {
	ShowLoading()
	ShowResults(cocktails []cocktail.Cocktail)
	ShowEmpty()
	ShowError(message string)
	Clear()
}

// TextChangedMsg reports the full current text of the search field.
type TextChangedMsg struct {
	Text string
}

// SubmitMsg asks for an immediate search of the current text.
type SubmitMsg struct{}

// RandomMsg asks for a random cocktail. The current text is discarded.
type RandomMsg struct{}

// debounceMsg fires when the quiet period after typing elapses.
type debounceMsg struct {
	id int
}

// resultMsg carries a completed request back to the UI goroutine.
type resultMsg struct {
	gen       uint64
	query     string
	random    bool
	cocktails []cocktail.Cocktail
	err       error
}

// resetMsg restores the idle prompt after an error has been shown.
type resetMsg struct {
	gen uint64
}

// Prompt lines shown when there is nothing else to display.
const (
	IdlePrompt = "Type a cocktail name or press ctrl+r for a random one"
	IdleHint   = "Try: margarita, mojito, cosmopolitan, bloody mary"
	EmptyTitle = "No cocktails found"
	EmptyHint  = "Try another name"
)
