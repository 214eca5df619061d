package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/cocktails"
	"github.com/smileynet/cocktails/internal/card"
	"github.com/smileynet/cocktails/internal/cocktail"
	"github.com/smileynet/cocktails/internal/config"
	"github.com/smileynet/cocktails/internal/logging"
	"github.com/smileynet/cocktails/internal/search"
	"github.com/smileynet/cocktails/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string        `help:"Extra config file, applied after the user and project files." type:"path"`
	Endpoint string        `help:"Override the cocktail API endpoint."`
	Timeout  time.Duration `help:"Request timeout, e.g. 5s. Zero keeps the configured value."`
}

// CLI is the top-level command structure for cocktails.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	UI      UICmd            `cmd:"" default:"1" help:"Open the interactive search screen."`
	Search  SearchCmd        `cmd:"" help:"Search cocktails by name and print their recipes."`
	Random  RandomCmd        `cmd:"" help:"Print a random cocktail recipe."`

	ExampleConfig ExampleConfigCmd `cmd:"" name:"example-config" help:"Print an annotated sample config file."`
}

// loadConfig loads layered config from user, project and flag paths, then
// applies .env, environment and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/cocktails/config.yaml"),
		".cocktails/config.yaml",
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if g.Endpoint != "" {
		cfg.API.Endpoint = g.Endpoint
	}
	if g.Timeout > 0 {
		cfg.API.Timeout = g.Timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns the file logger, falling back to a discarding logger
// with a warning on w when the file cannot be opened.
func openLogger(cfg *config.Config, w io.Writer) (*slog.Logger, func()) {
	logger, closer, err := logging.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		_, _ = fmt.Fprintf(w, "warning: logging disabled: %v\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}

// newClient builds the cocktail client from config.
func newClient(cfg *config.Config, logger *slog.Logger) (*cocktail.Client, error) {
	return cocktail.NewClient(cfg.API.Endpoint, cfg.API.Key,
		cocktail.WithTimeout(cfg.API.Timeout),
		cocktail.WithLogger(logger),
	)
}

// --- UI command ---

// UICmd opens the interactive search screen.
type UICmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the search screen.
func (u *UICmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("ui: requires a terminal (TTY); use 'cocktails search <name>' instead")
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	logger, closeLog := openLogger(cfg, os.Stderr)
	defer closeLog()

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := ui.NewModel(client,
		search.WithDebounce(cfg.Search.Debounce),
		search.WithErrorReset(cfg.Search.ErrorReset),
		search.WithLogger(logger),
		search.WithContext(ctx),
	)

	logger.Info("ui started", "version", version, "endpoint", cfg.API.Endpoint)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	return u.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (u *UICmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("ui: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// --- One-shot commands ---

// SearchCmd prints the cocktails matching a name.
type SearchCmd struct {
	Name  []string `arg:"" help:"Cocktail name; multiple words are joined with spaces."`
	Plain bool     `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run executes the search command.
func (s *SearchCmd) Run(g *Globals) error {
	return runOneShot(g, "search", s.Plain, func(ctx context.Context, c cocktail.Searcher, p *card.Printer) error {
		return s.run(ctx, c, p)
	})
}

func (s *SearchCmd) run(ctx context.Context, searcher cocktail.Searcher, p *card.Printer) error {
	name := strings.Join(s.Name, " ")
	results, err := searcher.SearchByName(ctx, name)
	if err != nil {
		return fmt.Errorf("search %q: %w", name, err)
	}
	return p.Print(results, name)
}

// RandomCmd prints one randomly chosen cocktail.
type RandomCmd struct {
	Plain bool `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run executes the random command.
func (r *RandomCmd) Run(g *Globals) error {
	return runOneShot(g, "random", r.Plain, func(ctx context.Context, c cocktail.Searcher, p *card.Printer) error {
		return r.run(ctx, c, p)
	})
}

func (r *RandomCmd) run(ctx context.Context, searcher cocktail.Searcher, p *card.Printer) error {
	results, err := searcher.RandomCocktail(ctx)
	if err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return p.Print(results, "")
}

// runOneShot wires config, logging and the client for a non-interactive command.
func runOneShot(g *Globals, name string, plain bool, fn func(context.Context, cocktail.Searcher, *card.Printer) error) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger, closeLog := openLogger(cfg, os.Stderr)
	defer closeLog()

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := card.NewPrinter(card.PrinterOptions{Writer: os.Stdout, ForcePlain: plain})
	return fn(ctx, client, printer)
}

// ExampleConfigCmd prints the embedded sample configuration.
type ExampleConfigCmd struct{}

// Run executes the example-config command.
func (e *ExampleConfigCmd) Run() error {
	return e.run(os.Stdout)
}

func (e *ExampleConfigCmd) run(w io.Writer) error {
	_, err := w.Write(cocktails.ExampleConfig)
	return err
}

// Exit codes.
const (
	exitSuccess = 0
	exitLookup  = 1
	exitSetup   = 2
)

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var (
		encErr *cocktail.EncodingError
		netErr *cocktail.NetworkError
		decErr *cocktail.DecodeError
	)
	if errors.As(err, &encErr) || errors.As(err, &netErr) || errors.As(err, &decErr) {
		return exitLookup
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cocktails"),
		kong.Description("Search cocktail recipes by name."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
