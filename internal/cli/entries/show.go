package entries

import (
	"github.com/foundersandcoders/lift/internal/cli"
)

type ShowCmd struct {
	ID string `arg:"" help:"Statement ID or unique prefix."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.ID)
	if err != nil {
		return err
	}

	visibility := "private"
	if e.IsPublic {
		visibility = "public"
	}
	ctx.Printf("%s\n\n", summary(ctx, e, false))
	ctx.Printf("  ID:        %s\n", e.ID)
	ctx.Printf("  Category:  %s\n", ctx.Taxonomy.CategoryDisplayName(e.Category))
	ctx.Printf("  Subject:   %s\n", e.Atoms.Subject)
	ctx.Printf("  Verb:      %s\n", e.Atoms.Verb)
	ctx.Printf("  Object:    %s\n", e.Atoms.Object)
	ctx.Printf("  Sharing:   %s\n", visibility)
	if e.PresetID != "" {
		ctx.Printf("  Question:  %s\n", e.PresetID)
	}
	if len(e.Actions) == 0 {
		return nil
	}

	ctx.Println("\n  Actions:")
	for _, a := range e.Actions {
		mark := " "
		if a.Completed {
			mark = "x"
		}
		ctx.Printf("    [%s] %s", mark, a.Action)
		if a.ByDate != "" {
			ctx.Printf(" (by %s)", a.ByDate)
		}
		if a.GratitudeSent {
			ctx.Printf(" - thanked %s", a.GratitudeSentDate)
		}
		ctx.Printf(" (ID: %s)\n", a.ID)
	}
	return nil
}
