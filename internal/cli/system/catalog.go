package system

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/taxonomy"
)

func swatch(color, text string) string {
	if color == "" || color == taxonomy.NoColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(ctx *cli.Context) error {
	var show func(cat models.Category, depth int)
	show = func(cat models.Category, depth int) {
		ctx.Printf("%s%s  %s\n", strings.Repeat("  ", depth), swatch(cat.Color, cat.DisplayName), cat.ID)
		for _, child := range cat.Children {
			show(child, depth+1)
		}
	}
	for _, cat := range ctx.Taxonomy.Root.Children {
		show(cat, 0)
	}
	return nil
}

type VerbsCmd struct {
	Category string `short:"c" help:"Only verbs for this category and its subcategories."`
}

func (c *VerbsCmd) Run(ctx *cli.Context) error {
	verbs := ctx.Taxonomy.VerbsFor("")
	if c.Category != "" {
		cat := ctx.Taxonomy.CategoryByID(c.Category)
		if cat == nil {
			cat = ctx.Taxonomy.Category(c.Category)
		}
		if cat == nil {
			ctx.Printf("Unknown category %q\n", c.Category)
			return nil
		}
		verbs = ctx.Taxonomy.VerbsFor(cat.Name)
	}
	for _, v := range verbs {
		ctx.Printf("  %-16s %-16s %3d  %s\n",
			v.ID,
			ctx.Taxonomy.VerbDisplay(v.ID, false),
			v.Popularity,
			swatch(ctx.Taxonomy.VerbColor(v.ID), strings.Join(v.Categories, ", ")))
	}
	return nil
}
