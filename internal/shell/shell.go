// Package shell runs the interactive numbered pantry menu over a reader and
// writer.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/pantry/internal/view"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Service is the set of pantry operations the menu dispatches to.
type Service interface {
	Add(ctx context.Context, item, date string) (types.PantryTable, error)
	List(ctx context.Context) (types.PantryTable, error)
	Expiring(ctx context.Context, horizonDays int) (types.PantryTable, error)
	FindRecipes(ctx context.Context, filter types.RecipeFilter, limit int) ([]types.RecipeDetail, error)
	RecipeDetail(ctx context.Context, id int) (types.RecipeDetail, error)
	SendAlert(ctx context.Context, to string, horizonDays int) (int, error)
}

const menu = `
Smart Pantry Tracker
1. Add Food Item
2. View Pantry
3. Check Expiring Soon
4. Find Recipes
5. Send Expiration Email Alert
6. Exit`

// Shell reads menu choices line by line until Exit or end of input.
type Shell struct {
	svc     Service
	in      *bufio.Scanner
	out     io.Writer
	view    *view.Renderer
	horizon int
	limit   int
}

// Option configures a Shell.
type Option func(*Shell)

// WithHorizon sets the expiring-soon window in days.
func WithHorizon(days int) Option {
	return func(s *Shell) { s.horizon = days }
}

// WithRecipeLimit sets how many recipes a search returns.
func WithRecipeLimit(n int) Option {
	return func(s *Shell) { s.limit = n }
}

// New returns a Shell reading from in and writing to out.
func New(svc Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		svc:     svc,
		in:      bufio.NewScanner(in),
		out:     out,
		view:    view.New(out, false),
		horizon: types.DefaultHorizonDays,
		limit:   types.DefaultRecipeLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits or input ends. Operation errors
// are printed and the menu continues; only a read error is returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, menu)
		choice, ok := s.prompt("Enter choice: ")
		if !ok {
			return s.in.Err()
		}
		var err error
		switch choice {
		case "1":
			err = s.addItem(ctx)
		case "2":
			err = s.viewPantry(ctx)
		case "3":
			err = s.checkExpiring(ctx)
		case "4":
			err = s.findRecipes(ctx)
		case "5":
			err = s.sendAlert(ctx)
		case "6":
			return nil
		default:
			fmt.Fprintf(s.out, "Unknown choice %q.\n", choice)
		}
		if errors.Is(err, errInputClosed) {
			return s.in.Err()
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// prompt prints label and returns the next trimmed input line. ok is false
// at end of input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
