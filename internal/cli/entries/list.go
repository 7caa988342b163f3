package entries

import (
	"fmt"
	"strings"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/statements"
)

type ListCmd struct {
	Resolved bool   `help:"Include resolved statements."`
	Public   bool   `help:"Show only statements shared with your manager."`
	Category string `short:"c" help:"Show only one category."`
	ShowIDs  bool   `help:"Show statement IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	var entries []models.Entry
	for _, e := range ctx.State.State().Entries {
		if e.IsResolved && !c.Resolved {
			continue
		}
		if c.Public && !e.IsPublic {
			continue
		}
		if c.Category != "" && !models.SameCategory(e.Category, c.Category) {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		ctx.Println("No statements found")
		return nil
	}

	for _, g := range statements.ByCategory(entries) {
		ctx.Printf("%s:\n", ctx.Taxonomy.CategoryDisplayName(g.Category))
		for _, e := range g.Entries {
			ctx.Printf("  %s\n", summary(ctx, e, c.ShowIDs))
		}
	}
	return nil
}

func summary(ctx *cli.Context, e models.Entry, showID bool) string {
	var b strings.Builder
	if e.IsPublic {
		b.WriteString("[public]  ")
	} else {
		b.WriteString("[private] ")
	}
	b.WriteString(statements.Display(e, ctx.Taxonomy))
	if e.IsResolved {
		b.WriteString(" (resolved)")
	}
	if n := len(e.Actions); n > 0 {
		done := 0
		for _, a := range e.Actions {
			if a.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, " [%d/%d %s]", done, n, noun(n))
	}
	if showID {
		b.WriteString(" (ID: " + e.ID + ")")
	}
	return b.String()
}

func noun(n int) string {
	if n == 1 {
		return "action"
	}
	return "actions"
}
