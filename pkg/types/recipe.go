package types

// RecipeCandidate is one recipe search result before detail enrichment.
type RecipeCandidate struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Ingredient is one line of a recipe's ingredient list. Name is the bare
// ingredient ("butter"); Original is the recipe's own wording
// ("2 tbsp unsalted butter").
type Ingredient struct {
	Name     string `json:"name"`
	Original string `json:"original"`
}

// RecipeDetail is the enriched single-recipe record. Results returned without
// a detail lookup carry only ID and Title.
type RecipeDetail struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Diets        []string     `json:"diets,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
}

// RecipeFilter narrows recipe results. Diet is one diet label
// ("vegetarian"); Intolerances is a comma-separated list of ingredient
// names to exclude. Empty fields do not filter.
type RecipeFilter struct {
	Diet         string
	Intolerances string
}
