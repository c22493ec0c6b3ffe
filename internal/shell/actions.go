package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// errInputClosed ends the menu loop when input runs out mid-flow.
var errInputClosed = errors.New("input closed")

func (s *Shell) addItem(ctx context.Context) error {
	item, err := s.promptUntil("Item name: ", "Item name must not be empty.", func(v string) error {
		if v == "" {
			return types.ErrEmptyItem
		}
		return nil
	})
	if err != nil {
		return err
	}
	date, err := s.promptUntil("Expiration date (YYYY-MM-DD): ", "Invalid date format! Please use YYYY-MM-DD.", func(v string) error {
		_, err := types.ParseDate(v)
		return err
	})
	if err != nil {
		return err
	}
	if _, err := s.svc.Add(ctx, item, date); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s added successfully!\n", item)
	return nil
}

// promptUntil re-prompts until valid accepts the input.
func (s *Shell) promptUntil(label, retry string, valid func(string) error) (string, error) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return "", errInputClosed
		}
		if valid(v) == nil {
			return v, nil
		}
		fmt.Fprintln(s.out, retry)
	}
}

func (s *Shell) viewPantry(ctx context.Context) error {
	table, err := s.svc.List(ctx)
	if err != nil {
		return err
	}
	return s.view.Pantry("Pantry Items (Sorted by Expiration Date):", table, "Pantry is empty.")
}

func (s *Shell) checkExpiring(ctx context.Context) error {
	soon, err := s.svc.Expiring(ctx, s.horizon)
	if err != nil {
		return err
	}
	return s.view.Pantry("Items Expiring Soon:", soon, "No items expiring soon.")
}

func (s *Shell) findRecipes(ctx context.Context) error {
	table, err := s.svc.List(ctx)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		fmt.Fprintln(s.out, "No ingredients found in pantry!")
		return nil
	}

	diet, ok := s.prompt("Enter a diet preference (e.g., vegetarian, keto) or press Enter to skip: ")
	if !ok {
		return errInputClosed
	}
	intolerances, ok := s.prompt("Enter any intolerances separated by commas (e.g., gluten,dairy) or press Enter to skip: ")
	if !ok {
		return errInputClosed
	}

	fmt.Fprintln(s.out, "Searching for recipes...")
	list, err := s.svc.FindRecipes(ctx, types.RecipeFilter{Diet: diet, Intolerances: intolerances}, s.limit)
	if errors.Is(err, types.ErrEmptyPantry) {
		fmt.Fprintln(s.out, "No ingredients found in pantry!")
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.view.Recipes(list); err != nil || len(list) == 0 {
		return err
	}

	choice, ok := s.prompt("Enter recipe number for details (or press Enter to skip): ")
	if !ok {
		return errInputClosed
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(list) {
		return nil
	}
	detail, err := s.svc.RecipeDetail(ctx, list[n-1].ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Recipe Details:")
	return s.view.Recipe(detail)
}

func (s *Shell) sendAlert(ctx context.Context) error {
	to, ok := s.prompt("Enter email address to send alert to: ")
	if !ok {
		return errInputClosed
	}
	sent, err := s.svc.SendAlert(ctx, to, s.horizon)
	if err != nil {
		return err
	}
	if sent == 0 {
		fmt.Fprintln(s.out, "No items expiring soon. No email sent.")
		return nil
	}
	fmt.Fprintf(s.out, "Expiration alert email sent successfully! (%d items)\n", sent)
	return nil
}
