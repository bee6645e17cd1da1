// Package render formats recipes for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pageza/masterchef/backend/internal/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")). // bright blue
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// RecipeCard renders the full recipe: ingredients as bullets, steps numbered,
// sources last when there are any.
func RecipeCard(r *model.Recipe) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Name))
	if r.ID != "" {
		b.WriteString("\n" + dimStyle.Render("id "+r.ID))
	}

	b.WriteString("\n" + sectionStyle.Render("Ingredients"))
	for _, ing := range r.Ingredients {
		b.WriteString("\n• " + ing)
	}

	b.WriteString("\n" + sectionStyle.Render("Instructions"))
	for i, step := range r.Instructions {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, step))
	}

	if len(r.Sources) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Sources"))
		for _, s := range r.Sources {
			line := s.Title
			if s.Title != s.URI {
				line += " " + dimStyle.Render("("+s.URI+")")
			}
			b.WriteString("\n" + line)
		}
	}

	return cardStyle.Render(b.String())
}

// RecipeList renders one row per recipe with its id, name and save date
func RecipeList(recipes []*model.Recipe) string {
	if len(recipes) == 0 {
		return dimStyle.Render("No saved recipes yet.")
	}

	idWidth, nameWidth := len("ID"), len("Name")
	for _, r := range recipes {
		idWidth = max(idWidth, lipgloss.Width(r.ID))
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}

	row := func(style lipgloss.Style, id, name, saved string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(idWidth+2).Render(id),
			style.Width(nameWidth+2).Render(name),
			style.Render(saved),
		)
	}

	lines := []string{row(headerStyle, "ID", "Name", "Saved")}
	for _, r := range recipes {
		saved := ""
		if !r.CreatedAt.IsZero() {
			saved = r.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		lines = append(lines, row(cellStyle, r.ID, r.Name, saved))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d recipe(s)", len(recipes))))
	return strings.Join(lines, "\n")
}
