package cocktail

import "context"

// Verify MockSearcher satisfies Searcher at compile time.
var _ Searcher = (*MockSearcher)(nil)

// MockSearcher is a test double for Searcher.
type MockSearcher struct {
	SearchFunc func(ctx context.Context, name string) ([]Cocktail, error)
	RandomFunc func(ctx context.Context) ([]Cocktail, error)
}

// SearchByName delegates to SearchFunc, returning no results if SearchFunc is nil.
func (m *MockSearcher) SearchByName(ctx context.Context, name string) ([]Cocktail, error) {
	if m.SearchFunc == nil {
		return []Cocktail{}, nil
	}
	return m.SearchFunc(ctx, name)
}

// RandomCocktail delegates to RandomFunc, returning no results if RandomFunc is nil.
func (m *MockSearcher) RandomCocktail(ctx context.Context) ([]Cocktail, error) {
	if m.RandomFunc == nil {
		return []Cocktail{}, nil
	}
	return m.RandomFunc(ctx)
}
