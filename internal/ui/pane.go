package ui

import (
	"strings"

	"github.com/smileynet/cocktails/internal/card"
	"github.com/smileynet/cocktails/internal/cocktail"
	"github.com/smileynet/cocktails/internal/search"
)

// Verify resultsPane satisfies search.Renderer at compile time.
var _ search.Renderer = (*resultsPane)(nil)

// resultsPane holds what the lower half of the screen shows. The controller
// drives it through search.Renderer; the model reads it when drawing.
type resultsPane struct {
	state     search.State
	cocktails []cocktail.Cocktail
	message   string
	// version increments whenever the content changes, so the model knows
	// when to scroll back to the top.
	version int
}

func newResultsPane() *resultsPane {
	return &resultsPane{state: search.StateIdle}
}

// ShowLoading implements search.Renderer.
func (p *resultsPane) ShowLoading() {
	p.set(search.StateLoading, nil, "")
}

// ShowResults implements search.Renderer.
func (p *resultsPane) ShowResults(cocktails []cocktail.Cocktail) {
	p.set(search.StateResults, cocktails, "")
}

// ShowEmpty implements search.Renderer.
func (p *resultsPane) ShowEmpty() {
	p.set(search.StateEmpty, nil, search.EmptyTitle)
}

// ShowError implements search.Renderer.
func (p *resultsPane) ShowError(message string) {
	p.set(search.StateError, nil, message)
}

// Clear implements search.Renderer.
func (p *resultsPane) Clear() {
	p.set(search.StateIdle, nil, search.IdlePrompt)
}

func (p *resultsPane) set(state search.State, cocktails []cocktail.Cocktail, message string) {
	p.state = state
	p.cocktails = cocktails
	p.message = message
	p.version++
}

// View renders the pane content for the given width. query is used to
// highlight matches in card titles.
func (p *resultsPane) View(width int, query, spinnerView string) string {
	switch p.state {
	case search.StateLoading:
		return spinnerView + " " + loadingStyle.Render("Mixing...")
	case search.StateResults:
		return card.RenderAll(p.cocktails, query, width)
	case search.StateEmpty:
		return centered(width, emptyStyle.Render(search.EmptyTitle), hintStyle.Render(search.EmptyHint))
	case search.StateError:
		return centered(width, errorStyle.Render(p.message), hintStyle.Render(search.EmptyHint))
	default:
		return centered(width, promptStyle.Render(search.IdlePrompt), hintStyle.Render(search.IdleHint))
	}
}

func centered(width int, lines ...string) string {
	if width <= 0 {
		return strings.Join(lines, "\n")
	}
	return blockStyle.Width(width).Render(strings.Join(lines, "\n"))
}
