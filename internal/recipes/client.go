// Package recipes searches the Spoonacular recipe API and narrows results by
// diet and intolerances.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Client talks to the Spoonacular recipes endpoints.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient returns a Client for cfg. The API key is required; a missing key
// is reported as a *types.ConfigurationError.
func NewClient(cfg types.RecipesConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &types.ConfigurationError{Missing: []string{"recipes.api_key (or SPOONACULAR_API_KEY)"}}
	}
	base := cfg.BaseURL
	if base == "" {
		base = types.DefaultRecipesBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultRecipesTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// searchResult is one element of the findByIngredients response.
type searchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// informationResponse is the subset of the recipe information response we use.
type informationResponse struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Diets               []string `json:"diets"`
	Instructions        string   `json:"instructions"`
	ExtendedIngredients []struct {
		Name     string `json:"name"`
		Original string `json:"original"`
	} `json:"extendedIngredients"`
}

// Search calls findByIngredients with the given ingredients and result count.
// Ranking mode 1 maximises used ingredients; ignorePantry leaves staples
// such as water and salt out of the missing-ingredient count.
func (c *Client) Search(ctx context.Context, ingredients []string, number int) ([]types.RecipeCandidate, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(number))
	q.Set("ranking", "1")
	q.Set("ignorePantry", "true")

	var results []searchResult
	if err := c.getJSON(ctx, "/recipes/findByIngredients", q, &results); err != nil {
		return nil, &types.RemoteAPIError{Op: "search recipes", StatusCode: statusOf(err), Err: err}
	}

	candidates := make([]types.RecipeCandidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, types.RecipeCandidate{ID: r.ID, Title: r.Title})
	}
	return candidates, nil
}

// Detail fetches the full information record of one recipe.
func (c *Client) Detail(ctx context.Context, id int) (types.RecipeDetail, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)

	var info informationResponse
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.getJSON(ctx, path, q, &info); err != nil {
		return types.RecipeDetail{}, &types.DetailFetchError{RecipeID: id, Err: err}
	}

	d := types.RecipeDetail{
		ID:           info.ID,
		Title:        info.Title,
		Diets:        info.Diets,
		Instructions: info.Instructions,
	}
	if d.ID == 0 {
		d.ID = id
	}
	for _, ing := range info.ExtendedIngredients {
		d.Ingredients = append(d.Ingredients, types.Ingredient{Name: ing.Name, Original: ing.Original})
	}
	return d, nil
}

// statusError is a non-2xx response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return http.StatusText(e.code)
	}
	return fmt.Sprintf("%s: %s", http.StatusText(e.code), e.body)
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
