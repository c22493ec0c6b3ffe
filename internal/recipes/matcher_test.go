package recipes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// fakeSource serves canned candidates and details and records calls.
type fakeSource struct {
	candidates  []types.RecipeCandidate
	details     map[int]types.RecipeDetail
	searchErr   error
	detailErrs  map[int]error
	searches    int
	number      int
	detailCalls []int
}

func (f *fakeSource) Search(ctx context.Context, ingredients []string, number int) ([]types.RecipeCandidate, error) {
	f.searches++
	f.number = number
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func (f *fakeSource) Detail(ctx context.Context, id int) (types.RecipeDetail, error) {
	f.detailCalls = append(f.detailCalls, id)
	if err := f.detailErrs[id]; err != nil {
		return types.RecipeDetail{}, &types.DetailFetchError{RecipeID: id, Err: err}
	}
	return f.details[id], nil
}

func candidates(n int) []types.RecipeCandidate {
	out := make([]types.RecipeCandidate, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, types.RecipeCandidate{ID: i, Title: "Recipe"})
	}
	return out
}

func detail(id int, diets []string, ingredients ...string) types.RecipeDetail {
	d := types.RecipeDetail{ID: id, Title: "Recipe", Diets: diets}
	for _, name := range ingredients {
		d.Ingredients = append(d.Ingredients, types.Ingredient{Name: name, Original: "1 " + name})
	}
	return d
}

func TestFindRecipesUnfiltered(t *testing.T) {
	tests := []struct {
		name      string
		available int
		limit     int
		want      int
	}{
		{"more candidates than limit", 10, 5, 5},
		{"fewer candidates than limit", 3, 5, 3},
		{"no candidates", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{candidates: candidates(tt.available)}
			got, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{}, tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.Equal(t, 2*tt.limit, src.number, "search over-fetches by two")
			assert.Empty(t, src.detailCalls, "no detail fetch without a filter")
			for i, d := range got {
				assert.Equal(t, i+1, d.ID)
			}
		})
	}
}

func TestFindRecipesPreconditions(t *testing.T) {
	t.Run("empty ingredients makes no call", func(t *testing.T) {
		src := &fakeSource{candidates: candidates(3)}
		got, err := NewMatcher(src, nil).FindRecipes(context.Background(), nil, types.RecipeFilter{Diet: "vegan"}, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, src.searches)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		src := &fakeSource{}
		_, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{}, 0)
		assert.ErrorIs(t, err, types.ErrInvalidLimit)
		assert.Zero(t, src.searches)
	})

	t.Run("search failure aborts", func(t *testing.T) {
		src := &fakeSource{searchErr: &types.RemoteAPIError{Op: "search recipes", Err: errors.New("timeout")}}
		_, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{Diet: "vegan"}, 5)
		assert.ErrorIs(t, err, types.ErrRemoteAPI)
		assert.Empty(t, src.detailCalls)
	})
}

func TestFindRecipesDiet(t *testing.T) {
	src := &fakeSource{
		candidates: candidates(4),
		details: map[int]types.RecipeDetail{
			1: detail(1, []string{"gluten free"}),
			2: detail(2, []string{"Lacto Ovo Vegetarian", "Vegetarian"}),
			3: detail(3, []string{"pescatarian"}),
			4: detail(4, nil),
		},
	}
	got, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{Diet: " VEGETARIAN "}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, []int{1, 2, 3, 4}, src.detailCalls)
}

func TestFindRecipesDietIsExactLabel(t *testing.T) {
	src := &fakeSource{
		candidates: candidates(1),
		details:    map[int]types.RecipeDetail{1: detail(1, []string{"lacto ovo vegetarian"})},
	}
	got, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{Diet: "vegetarian"}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRecipesIntolerancesExactToken(t *testing.T) {
	src := &fakeSource{
		candidates: candidates(3),
		details: map[int]types.RecipeDetail{
			1: detail(1, nil, "eggs", "Milk"),
			2: detail(2, nil, "eggs", "milk chocolate"),
			3: detail(3, nil, "flour", "butter"),
		},
	}
	got, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"eggs"}, types.RecipeFilter{Intolerances: " milk , ,Peanuts"}, 5)
	require.NoError(t, err)

	var ids []int
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	// "milk chocolate" is not the token "milk", so recipe 2 stays.
	assert.Equal(t, []int{2, 3}, ids)
}

func TestFindRecipesEarlyTermination(t *testing.T) {
	details := map[int]types.RecipeDetail{}
	for i := 1; i <= 10; i++ {
		details[i] = detail(i, []string{"vegan"})
	}
	src := &fakeSource{candidates: candidates(10), details: details}

	got, err := NewMatcher(src, nil).FindRecipes(context.Background(), []string{"tofu"}, types.RecipeFilter{Diet: "vegan"}, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, src.detailCalls, "later candidates are never fetched")
}

func TestFindRecipesDetailFailureIsSkipped(t *testing.T) {
	src := &fakeSource{
		candidates: candidates(3),
		details: map[int]types.RecipeDetail{
			2: detail(2, []string{"vegan"}),
			3: detail(3, []string{"vegan"}),
		},
		detailErrs: map[int]error{1: errors.New("502 bad gateway")},
	}
	var skipped []error
	m := NewMatcher(src, func(err error) { skipped = append(skipped, err) })

	got, err := m.FindRecipes(context.Background(), []string{"tofu"}, types.RecipeFilter{Diet: "vegan"}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], types.ErrDetailFetch)
}

func TestIntoleranceTokens(t *testing.T) {
	assert.Equal(t, []string{"gluten", "dairy"}, IntoleranceTokens(" Gluten ,DAIRY,, "))
	assert.Empty(t, IntoleranceTokens(""))
}
