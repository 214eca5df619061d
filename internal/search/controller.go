package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/cocktails/internal/cocktail"
)

// Default timings.
const (
	DefaultDebounce   = 700 * time.Millisecond
	DefaultErrorReset = 3 * time.Second
)

// Controller turns text changes and explicit actions into cocktail lookups.
// It is a value type updated on the UI goroutine, like any Bubble Tea model.
type Controller struct {
	searcher   cocktail.Searcher
	renderer   Renderer
	ctx        context.Context
	debounce   time.Duration
	errorReset time.Duration
	logger     *slog.Logger

	state   State
	query   string
	timerID int
	pending bool
	gen     uint64
	message string
	results []cocktail.Cocktail
	lastErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the quiet period after typing. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithErrorReset sets how long an error message stays before the idle prompt
// returns. Non-positive values are ignored.
func WithErrorReset(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.errorReset = d
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithContext sets the parent context for issued requests.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// New creates a Controller in the Idle state.
func New(searcher cocktail.Searcher, renderer Renderer, opts ...Option) Controller {
	c := Controller{
		searcher:   searcher,
		renderer:   renderer,
		ctx:        context.Background(),
		debounce:   DefaultDebounce,
		errorReset: DefaultErrorReset,
		logger:     slog.New(slog.DiscardHandler),
		state:      StateIdle,
		message:    IdlePrompt,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// State returns the current state.
func (c Controller) State() State { return c.state }

// Query returns the text the controller currently tracks.
func (c Controller) Query() string { return c.query }

// Message returns the prompt or error line for the current state.
func (c Controller) Message() string { return c.message }

// Results returns the cocktails of the latest successful non-empty lookup.
func (c Controller) Results() []cocktail.Cocktail { return c.results }

// Err returns the error of the latest failed lookup, if the controller is in StateError.
func (c Controller) Err() error { return c.lastErr }

// Generation returns the number of requests issued or superseded so far.
func (c Controller) Generation() uint64 { return c.gen }

// Pending reports whether a debounce timer is armed.
func (c Controller) Pending() bool { return c.pending }

// Update handles search messages. Messages it does not know are ignored.
func (c Controller) Update(msg tea.Msg) (Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case TextChangedMsg:
		return c.textChanged(msg.Text)

	case SubmitMsg:
		c.pending = false
		if c.query == "" {
			return c, nil
		}
		return c.issue(c.query, false)

	case RandomMsg:
		c.pending = false
		c.query = ""
		return c.issue("", true)

	case debounceMsg:
		if !c.pending || msg.id != c.timerID {
			return c, nil
		}
		c.pending = false
		if c.query == "" {
			return c, nil
		}
		return c.issue(c.query, false)

	case resultMsg:
		return c.applyResult(msg)

	case resetMsg:
		if msg.gen != c.gen || c.state != StateError {
			return c, nil
		}
		c.state = StateIdle
		c.message = IdlePrompt
		c.lastErr = nil
		c.render()
		return c, nil
	}
	return c, nil
}

func (c Controller) textChanged(text string) (Controller, tea.Cmd) {
	c.query = text
	c.pending = false
	c.timerID++

	if text == "" {
		// Supersede anything in flight so a late response cannot refill a cleared screen.
		c.gen++
		c.state = StateIdle
		c.message = IdlePrompt
		c.results = nil
		c.lastErr = nil
		c.render()
		return c, nil
	}

	c.pending = true
	id := c.timerID
	return c, tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// issue starts a request and returns the command that performs it off the UI goroutine.
func (c Controller) issue(query string, random bool) (Controller, tea.Cmd) {
	c.pending = false
	c.gen++
	c.state = StateLoading
	c.message = ""
	c.lastErr = nil
	c.render()

	gen := c.gen
	searcher := c.searcher
	ctx := c.ctx
	c.logger.Debug("search issued", "gen", gen, "query", query, "random", random)

	return c, func() tea.Msg {
		var (
			cocktails []cocktail.Cocktail
			err       error
		)
		if random {
			cocktails, err = searcher.RandomCocktail(ctx)
		} else {
			cocktails, err = searcher.SearchByName(ctx, query)
		}
		return resultMsg{gen: gen, query: query, random: random, cocktails: cocktails, err: err}
	}
}

func (c Controller) applyResult(msg resultMsg) (Controller, tea.Cmd) {
	if msg.gen != c.gen {
		c.logger.Debug("stale search response discarded", "gen", msg.gen, "current", c.gen, "query", msg.query)
		return c, nil
	}

	switch {
	case msg.err != nil:
		c.state = StateError
		c.results = nil
		c.lastErr = msg.err
		c.message = "Error: " + Describe(msg.err)
		c.logger.Warn("search failed", "gen", msg.gen, "query", msg.query, "random", msg.random, "error", msg.err)
		c.render()
		gen := c.gen
		return c, tea.Tick(c.errorReset, func(time.Time) tea.Msg {
			return resetMsg{gen: gen}
		})

	case len(msg.cocktails) == 0:
		c.state = StateEmpty
		c.results = nil
		c.message = EmptyTitle
		c.logger.Info("search empty", "gen", msg.gen, "query", msg.query, "random", msg.random)

	default:
		c.state = StateResults
		c.results = msg.cocktails
		c.message = ""
		c.logger.Info("search results", "gen", msg.gen, "query", msg.query, "random", msg.random, "count", len(msg.cocktails))
	}
	c.render()
	return c, nil
}

// render pushes the current state to the renderer.
func (c Controller) render() {
	if c.renderer == nil {
		return
	}
	switch c.state {
	case StateIdle:
		c.renderer.Clear()
	case StateLoading:
		c.renderer.ShowLoading()
	case StateResults:
		c.renderer.ShowResults(c.results)
	case StateEmpty:
		c.renderer.ShowEmpty()
	case StateError:
		c.renderer.ShowError(c.message)
	}
}

// Describe turns a lookup error into a short human-readable cause.
func Describe(err error) string {
	var (
		encErr *cocktail.EncodingError
		netErr *cocktail.NetworkError
		decErr *cocktail.DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.As(err, &encErr):
		return "cannot search for that name: " + encErr.Reason
	case errors.As(err, &netErr) && netErr.Timeout():
		return "the request timed out"
	case errors.As(err, &netErr) && netErr.StatusCode != 0:
		return fmt.Sprintf("service returned %d: %v", netErr.StatusCode, netErr.Err)
	case errors.As(err, &netErr):
		return fmt.Sprintf("network unavailable: %v", netErr.Err)
	case errors.As(err, &decErr):
		return "unexpected response from the service"
	default:
		return err.Error()
	}
}
