// Package view renders pantry tables and recipes for the terminal, either
// as lipgloss tables and text or as indented JSON.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
)

// Renderer writes command output to w.
type Renderer struct {
	w      io.Writer
	asJSON bool
}

// New returns a Renderer. With asJSON set every method writes JSON and
// Status lines are suppressed.
func New(w io.Writer, asJSON bool) *Renderer {
	return &Renderer{w: w, asJSON: asJSON}
}

// Status prints one informational line in text mode.
func (r *Renderer) Status(format string, args ...any) {
	if r.asJSON {
		return
	}
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Pantry prints heading and the table, or empty when the table has no rows.
func (r *Renderer) Pantry(heading string, table types.PantryTable, empty string) error {
	if r.asJSON {
		return r.writeJSON(table.Clone())
	}
	if len(table) == 0 {
		_, err := fmt.Fprintln(r.w, empty)
		return err
	}
	_, err := fmt.Fprintf(r.w, "%s\n%s\n", headingStyle.Render(heading), PantryTable(table))
	return err
}

// Recipes prints a numbered list of recipe titles and ids.
func (r *Renderer) Recipes(list []types.RecipeDetail) error {
	if r.asJSON {
		if list == nil {
			list = []types.RecipeDetail{}
		}
		return r.writeJSON(list)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(r.w, "No recipes found with the given filters.")
		return err
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Suggested Recipes:"))
	b.WriteByte('\n')
	for i, d := range list {
		fmt.Fprintf(&b, "%d. %s (ID: %d)\n", i+1, d.Title, d.ID)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Recipe prints one recipe's detail.
func (r *Renderer) Recipe(d types.RecipeDetail) error {
	if r.asJSON {
		return r.writeJSON(d)
	}
	_, err := io.WriteString(r.w, RecipeDetail(d))
	return err
}

// Value writes v as JSON in JSON mode and is a no-op otherwise.
func (r *Renderer) Value(v any) error {
	if !r.asJSON {
		return nil
	}
	return r.writeJSON(v)
}

func (r *Renderer) writeJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(out))
	return err
}

// PantryTable renders records as a bordered two-column table.
func PantryTable(table types.PantryTable) string {
	rows := table.Rows()
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(rows[0]...).
		Rows(rows[1:]...)
	return t.String()
}

// RecipeDetail renders a recipe as labelled text.
func RecipeDetail(d types.RecipeDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (ID: %d)\n", labelStyle.Render("Title:"), d.Title, d.ID)
	if len(d.Diets) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Diets:"), strings.Join(d.Diets, ", "))
	}
	b.WriteString(labelStyle.Render("Ingredients:"))
	b.WriteByte('\n')
	for _, ing := range d.Ingredients {
		line := ing.Original
		if line == "" {
			line = ing.Name
		}
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	instructions := strings.TrimSpace(d.Instructions)
	if instructions == "" {
		instructions = "(none provided)"
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Instructions:"), instructions)
	return b.String()
}
