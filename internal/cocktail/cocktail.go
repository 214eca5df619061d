// Package cocktail talks to the remote cocktail search service.
//
// One GET per lookup, an API key header, and a JSON array of recipes back.
// No caching and no retries: callers decide what to do with a failure.
package cocktail

import "slices"

// Cocktail is a single recipe returned by the service.
// Values are produced by decoding a response and are not modified afterwards.
type Cocktail struct {
	Name         string
	Ingredients  []string
	Instructions string
}

// Equal reports whether c and other describe the same recipe.
func (c Cocktail) Equal(other Cocktail) bool {
	return c.Name == other.Name &&
		c.Instructions == other.Instructions &&
		slices.Equal(c.Ingredients, other.Ingredients)
}

// RandomNames are the seed terms used for a random lookup.
var RandomNames = [...]string{
	"margarita",
	"mojito",
	"cosmopolitan",
	"martini",
	"manhattan",
	"daiquiri",
	"whiskey sour",
	"pina colada",
	"bloody mary",
	"old fashioned",
}
