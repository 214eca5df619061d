package card

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/cocktails/internal/cocktail"
)

// DefaultWidth is the card width used for styled output.
const DefaultWidth = 60

// PrinterOptions configures printer creation.
type PrinterOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
	Width      int       // Card width for styled output (default: DefaultWidth).
}

// Printer writes cocktails for one-shot commands.
type Printer struct {
	w      io.Writer
	styled bool
	width  int
}

// NewPrinter returns a Printer that styles its output when the writer is a
// terminal. ForcePlain overrides TTY detection.
func NewPrinter(opts PrinterOptions) *Printer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Printer{
		w:      opts.Writer,
		styled: !opts.ForcePlain && isTTY(opts.Writer),
		width:  opts.Width,
	}
}

// Styled reports whether output is styled.
func (p *Printer) Styled() bool { return p.styled }

// Print writes every cocktail, or the not-found message when cs is empty.
func (p *Printer) Print(cs []cocktail.Cocktail, query string) error {
	if len(cs) == 0 {
		_, err := fmt.Fprintln(p.w, "No cocktails found. Try another name.")
		return err
	}
	for i, c := range cs {
		if i > 0 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		text := Plain(c)
		if p.styled {
			text = Render(c, query, p.width)
		}
		if _, err := fmt.Fprintln(p.w, text); err != nil {
			return err
		}
	}
	return nil
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
