package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func (a *app) newRecipesCmd() *cobra.Command {
	var (
		filter types.RecipeFilter
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Suggest recipes that use the pantry's items",
		Long: `Recipes searches for recipes using every item in the pantry. A diet keeps
only recipes carrying that diet label; intolerances drop recipes listing any
of the given ingredients.`,
		Example: `  pantry recipes
  pantry recipes --diet vegetarian --intolerances "peanuts, shellfish" --limit 3
  pantry recipes show 716429`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Recipes.Limit
			}
			finder, err := a.recipeFinder()
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context(), pantry.WithRecipeFinder(finder))
			if err != nil {
				return err
			}
			a.view.Status("Searching for recipes...")
			list, err := svc.FindRecipes(cmd.Context(), filter, limit)
			if err != nil {
				return err
			}
			return a.view.Recipes(list)
		},
	}
	cmd.Flags().StringVar(&filter.Diet, "diet", "", "diet label, e.g. vegetarian or keto")
	cmd.Flags().StringVar(&filter.Intolerances, "intolerances", "", "comma-separated ingredients to avoid")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of recipes (default from recipes.limit)")

	cmd.AddCommand(a.newRecipeShowCmd())
	return cmd
}

var errRecipeID = errors.New("recipe id must be a positive integer")

func (a *app) newRecipeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe's ingredients and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return &types.ValidationError{Field: "id", Value: args[0], Err: errRecipeID}
			}
			finder, err := a.recipeFinder()
			if err != nil {
				return err
			}
			detail, err := finder.Detail(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("recipe %d: %w", id, err)
			}
			return a.view.Recipe(detail)
		},
	}
}
