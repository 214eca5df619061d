// Package card formats a cocktail as a recipe card, either styled for a
// terminal or as plain text.
package card

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/smileynet/cocktails/internal/cocktail"
)

// Section headings and markers.
const (
	TitleIcon           = "🍹"
	IngredientsHeading  = "🍸 Ingredients:"
	InstructionsHeading = "📝 Instructions:"
	Bullet              = "•"
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "208", Dark: "214"}).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	matchStyle = titleStyle.
			Underline(true).
			Foreground(lipgloss.AdaptiveColor{Light: "208", Dark: "214"})

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})

	bodyStyle = lipgloss.NewStyle()
)

// Title returns the card heading: the icon followed by the upper-cased name.
func Title(name string) string {
	return TitleIcon + " " + strings.ToUpper(name)
}

// Plain returns the card as unstyled text.
func Plain(c cocktail.Cocktail) string {
	var b strings.Builder
	b.WriteString(Title(c.Name))
	b.WriteString("\n\n")
	b.WriteString(IngredientsHeading)
	b.WriteString("\n")
	for _, ing := range c.Ingredients {
		b.WriteString(Bullet + " " + ing + "\n")
	}
	b.WriteString("\n")
	b.WriteString(InstructionsHeading)
	b.WriteString("\n")
	b.WriteString(c.Instructions)
	return b.String()
}

// Render returns the card styled for a terminal, fitted to width columns
// including the border. Characters of the name matched by query are highlighted.
func Render(c cocktail.Cocktail, query string, width int) string {
	inner := width - borderStyle.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	text := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(TitleIcon + " " + highlightName(strings.ToUpper(c.Name), query))
	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(IngredientsHeading))
	b.WriteString("\n")
	for _, ing := range c.Ingredients {
		b.WriteString(text.Render(bodyStyle.Render(Bullet + " " + ing)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(InstructionsHeading))
	b.WriteString("\n")
	b.WriteString(text.Render(c.Instructions))

	return borderStyle.Width(inner + borderStyle.GetHorizontalPadding()).Render(b.String())
}

// RenderAll renders each card separated by a blank line.
func RenderAll(cs []cocktail.Cocktail, query string, width int) string {
	cards := make([]string, 0, len(cs))
	for _, c := range cs {
		cards = append(cards, Render(c, query, width))
	}
	return strings.Join(cards, "\n\n")
}

// MatchedRunes returns the rune positions in name that fuzzy-match query,
// ignoring case. It returns nil when query is empty or does not match.
func MatchedRunes(name, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	matches := fuzzy.Find(strings.ToLower(query), []string{lower})
	if len(matches) == 0 {
		return nil
	}
	if utf8.RuneCountInString(lower) != utf8.RuneCountInString(name) {
		return nil
	}

	// fuzzy reports byte offsets; convert them to rune offsets.
	byteToRune := make(map[int]int, len(lower))
	r := 0
	for i := range lower {
		byteToRune[i] = r
		r++
	}
	out := make([]int, 0, len(matches[0].MatchedIndexes))
	for _, bi := range matches[0].MatchedIndexes {
		if ri, ok := byteToRune[bi]; ok {
			out = append(out, ri)
		}
	}
	return out
}

func highlightName(name, query string) string {
	idx := MatchedRunes(name, query)
	if len(idx) == 0 {
		return titleStyle.Render(name)
	}
	matched := make(map[int]bool, len(idx))
	for _, i := range idx {
		matched[i] = true
	}

	var b strings.Builder
	i := 0
	for _, r := range name {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(titleStyle.Render(string(r)))
		}
		i++
	}
	return b.String()
}
