package recipes

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// overFetch is how many search candidates are requested per wanted result,
// to leave room for candidates dropped by filtering.
const overFetch = 2

// Source is the recipe API used by Matcher. *Client implements it.
type Source interface {
	Search(ctx context.Context, ingredients []string, number int) ([]types.RecipeCandidate, error)
	Detail(ctx context.Context, id int) (types.RecipeDetail, error)
}

// Matcher finds recipes for pantry ingredients.
type Matcher struct {
	src    Source
	onSkip func(error)
}

// NewMatcher returns a Matcher over src. onSkip, if non-nil, receives each
// detail fetch error that caused a candidate to be skipped.
func NewMatcher(src Source, onSkip func(error)) *Matcher {
	return &Matcher{src: src, onSkip: onSkip}
}

// FindRecipes searches for up to limit recipes using ingredients.
//
// Without a filter the first limit search results are returned as is, with
// only ID and Title set. With a filter, each candidate's detail is fetched
// in search order and the candidate kept if it matches; fetching stops as
// soon as limit matches are found. A failed detail fetch counts as a non-match.
// A failed search aborts with a *types.RemoteAPIError.
func (m *Matcher) FindRecipes(ctx context.Context, ingredients []string, filter types.RecipeFilter, limit int) ([]types.RecipeDetail, error) {
	if limit <= 0 {
		return nil, &types.ValidationError{Field: "limit", Err: types.ErrInvalidLimit}
	}
	if len(ingredients) == 0 {
		return []types.RecipeDetail{}, nil
	}

	candidates, err := m.src.Search(ctx, ingredients, overFetch*limit)
	if err != nil {
		return nil, err
	}

	diet := normalize(filter.Diet)
	avoid := IntoleranceTokens(filter.Intolerances)

	if diet == "" && len(avoid) == 0 {
		n := min(limit, len(candidates))
		out := make([]types.RecipeDetail, 0, n)
		for _, c := range candidates[:n] {
			out = append(out, types.RecipeDetail{ID: c.ID, Title: c.Title})
		}
		return out, nil
	}

	matched := make([]types.RecipeDetail, 0, limit)
	for i := 0; i < len(candidates) && len(matched) < limit; i++ {
		detail, err := m.src.Detail(ctx, candidates[i].ID)
		if err != nil {
			if m.onSkip != nil {
				m.onSkip(err)
			}
			continue
		}
		if matchesDiet(detail, diet) && avoidsAll(detail, avoid) {
			matched = append(matched, detail)
		}
	}
	return matched, nil
}

// Detail fetches one recipe's full record.
func (m *Matcher) Detail(ctx context.Context, id int) (types.RecipeDetail, error) {
	return m.src.Detail(ctx, id)
}

// IntoleranceTokens splits a comma-separated intolerance list into
// normalized, non-empty tokens.
func IntoleranceTokens(s string) []string {
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		if tok := normalize(part); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesDiet reports whether d is labelled with diet. An empty diet matches
// everything.
func matchesDiet(d types.RecipeDetail, diet string) bool {
	if diet == "" {
		return true
	}
	for _, label := range d.Diets {
		if normalize(label) == diet {
			return true
		}
	}
	return false
}

// avoidsAll reports whether no ingredient name of d equals any token exactly.
func avoidsAll(d types.RecipeDetail, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	names := make(map[string]bool, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		names[normalize(ing.Name)] = true
	}
	for _, tok := range tokens {
		if names[tok] {
			return false
		}
	}
	return true
}
