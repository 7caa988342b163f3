package entries

import (
	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/statements"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Statement ID or unique prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.ID)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Statements().Delete(e.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted statement: %s\n", statements.Display(e, ctx.Taxonomy))
	return nil
}

// ResetCmd deletes a statement that answered a preset question so the
// question can be answered again.
type ResetCmd struct {
	ID string `arg:"" help:"Statement ID or unique prefix."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.ID)
	if err != nil {
		return err
	}
	presetID, err := ctx.Statements().Reset(e.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Reset statement; question %s is available again\n", presetID)
	return nil
}

type ResolveCmd struct {
	ID string `arg:"" help:"Statement ID or unique prefix."`
}

func (c *ResolveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.ID)
	if err != nil {
		return err
	}
	updated, err := ctx.Statements().ToggleResolved(e.ID)
	if err != nil {
		return err
	}
	if updated.IsResolved {
		ctx.Printf("Resolved: %s\n", statements.Display(updated, ctx.Taxonomy))
	} else {
		ctx.Printf("Reopened: %s\n", statements.Display(updated, ctx.Taxonomy))
	}
	return nil
}

// ShareCmd prints the statements a manager would receive.
type ShareCmd struct{}

func (c *ShareCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	st := ctx.State.State()
	public := statements.Public(st.Entries)
	if len(public) == 0 {
		ctx.Println("No public statements to share")
		return nil
	}

	if st.ManagerName != "" {
		ctx.Printf("To: %s", st.ManagerName)
		if st.ManagerEmail != "" {
			ctx.Printf(" <%s>", st.ManagerEmail)
		}
		ctx.Println()
	}
	if st.Username != "" {
		ctx.Printf("From: %s\n", st.Username)
	}
	ctx.Println()
	for _, g := range statements.ByCategory(public) {
		ctx.Printf("%s\n", ctx.Taxonomy.CategoryDisplayName(g.Category))
		for _, e := range g.Entries {
			ctx.Printf("  - %s\n", statements.FormatForManager(e, st.Username, ctx.Taxonomy))
			for _, a := range e.Actions {
				if !a.Completed {
					ctx.Printf("      * %s\n", a.Action)
				}
			}
		}
	}
	return nil
}
