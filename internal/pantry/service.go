package pantry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// RecipeFinder searches recipes for a list of ingredients and looks up a
// single recipe's detail.
type RecipeFinder interface {
	FindRecipes(ctx context.Context, ingredients []string, filter types.RecipeFilter, limit int) ([]types.RecipeDetail, error)
	Detail(ctx context.Context, id int) (types.RecipeDetail, error)
}

// Alerter sends one expiration alert listing items to the given address.
// It reports false when items is empty and nothing was sent.
type Alerter interface {
	Alert(ctx context.Context, to string, items types.PantryTable) (bool, error)
}

// Service runs pantry operations against a Store. Each call loads the full
// table; Add writes the full table back.
type Service struct {
	store   types.Store
	recipes RecipeFinder
	alerter Alerter
	setup   func(context.Context) (Alerter, error)
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecipeFinder enables FindRecipes and RecipeDetail.
func WithRecipeFinder(f RecipeFinder) Option {
	return func(s *Service) { s.recipes = f }
}

// WithAlerter enables SendAlert.
func WithAlerter(a Alerter) Option {
	return func(s *Service) { s.alerter = a }
}

// WithAlerterSetup defers building the alerter until the first SendAlert.
// A setup error is returned from SendAlert before the store is read.
func WithAlerterSetup(setup func(context.Context) (Alerter, error)) Option {
	return func(s *Service) { s.setup = setup }
}

// WithClock replaces time.Now as the reference time for expiration checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service backed by an attached store.
func NewService(store types.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the table as stored.
func (s *Service) List(ctx context.Context) (types.PantryTable, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pantry: %w", err)
	}
	return table, nil
}

// Add validates and appends one item, then saves the re-sorted table.
// Validation failures return before the store is touched. A failed save
// leaves the store at its previous contents; nothing is rolled back in
// memory because the table is discarded.
func (s *Service) Add(ctx context.Context, item, date string) (types.PantryTable, error) {
	if _, err := types.ParseDate(date); err != nil {
		return nil, err
	}
	table, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	next, err := AddItem(table, item, date)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save pantry: %w", err)
	}
	return next, nil
}

// Expiring returns the items expiring within horizonDays of now.
func (s *Service) Expiring(ctx context.Context, horizonDays int) (types.PantryTable, error) {
	table, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterExpiring(table, s.now(), horizonDays), nil
}

// FindRecipes searches recipes using every item name in the pantry.
// Returns types.ErrEmptyPantry without calling the API when the pantry is
// empty.
func (s *Service) FindRecipes(ctx context.Context, filter types.RecipeFilter, limit int) ([]types.RecipeDetail, error) {
	if s.recipes == nil {
		return nil, &types.ConfigurationError{Missing: []string{"recipes.api_key"}}
	}
	table, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var ingredients []string
	for _, item := range table.Items() {
		if item = strings.TrimSpace(item); item != "" {
			ingredients = append(ingredients, item)
		}
	}
	if len(ingredients) == 0 {
		return nil, types.ErrEmptyPantry
	}
	return s.recipes.FindRecipes(ctx, ingredients, filter, limit)
}

// RecipeDetail fetches the full record of one recipe.
func (s *Service) RecipeDetail(ctx context.Context, id int) (types.RecipeDetail, error) {
	if s.recipes == nil {
		return types.RecipeDetail{}, &types.ConfigurationError{Missing: []string{"recipes.api_key"}}
	}
	return s.recipes.Detail(ctx, id)
}

// SendAlert emails the items expiring within horizonDays to the address to.
// It returns the number of items listed; zero means no email was sent.
func (s *Service) SendAlert(ctx context.Context, to string, horizonDays int) (int, error) {
	alerter, err := s.resolveAlerter(ctx)
	if err != nil {
		return 0, err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return 0, &types.ValidationError{Field: "to", Err: types.ErrEmptyRecipient}
	}
	soon, err := s.Expiring(ctx, horizonDays)
	if err != nil {
		return 0, err
	}
	sent, err := alerter.Alert(ctx, to, soon)
	if err != nil {
		return 0, fmt.Errorf("send alert: %w", err)
	}
	if !sent {
		return 0, nil
	}
	return len(soon), nil
}

func (s *Service) resolveAlerter(ctx context.Context) (Alerter, error) {
	if s.alerter == nil && s.setup != nil {
		a, err := s.setup(ctx)
		if err != nil {
			return nil, err
		}
		s.alerter = a
	}
	if s.alerter == nil {
		return nil, &types.ConfigurationError{Missing: []string{"notify.transport"}}
	}
	return s.alerter, nil
}
