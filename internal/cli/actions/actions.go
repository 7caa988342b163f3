package actions

import (
	"context"

	"github.com/foundersandcoders/lift/internal/cli"
)

// ActionCmd groups the follow-up action commands.
type ActionCmd struct {
	Add    AddCmd    `cmd:"" help:"Add a follow-up action to a statement."`
	Edit   EditCmd   `cmd:"" help:"Edit an action."`
	Delete DeleteCmd `cmd:"" help:"Delete an action."`
	Toggle ToggleCmd `cmd:"" help:"Mark an action done or not done."`
	Thank  ThankCmd  `cmd:"" help:"Record that you thanked someone for an action."`
}

type AddCmd struct {
	Entry  string `arg:"" help:"Statement ID or unique prefix."`
	Text   string `arg:"" help:"What needs to happen."`
	ByDate string `name:"by" help:"Due date (YYYY-MM-DD)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.Entry)
	if err != nil {
		return err
	}
	a, err := ctx.Statements().AddAction(e.ID, c.Text, c.ByDate)
	if err != nil {
		return err
	}
	ctx.Printf("Added action: %s (ID: %s)\n", a.Action, a.ID)
	return nil
}

type EditCmd struct {
	Entry  string `arg:"" help:"Statement ID or unique prefix."`
	Action string `arg:"" help:"Action ID."`
	Text   string `arg:"" help:"New text."`
	ByDate string `name:"by" help:"New due date (YYYY-MM-DD). Empty keeps the current one."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.Entry)
	if err != nil {
		return err
	}
	a, err := ctx.Statements().EditAction(e.ID, c.Action, c.Text, c.ByDate)
	if err != nil {
		return err
	}
	ctx.Printf("Updated action: %s\n", a.Action)
	return nil
}

type DeleteCmd struct {
	Entry  string `arg:"" help:"Statement ID or unique prefix."`
	Action string `arg:"" help:"Action ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.Entry)
	if err != nil {
		return err
	}
	if err := ctx.Statements().DeleteAction(e.ID, c.Action); err != nil {
		return err
	}
	ctx.Println("Deleted action")
	return nil
}

type ToggleCmd struct {
	Entry  string `arg:"" help:"Statement ID or unique prefix."`
	Action string `arg:"" help:"Action ID."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.Entry)
	if err != nil {
		return err
	}
	a, err := ctx.Statements().ToggleAction(e.ID, c.Action)
	if err != nil {
		return err
	}
	state := "not done"
	if a.Completed {
		state = "done"
	}
	ctx.Printf("Marked %q %s\n", a.Action, state)
	return nil
}

type ThankCmd struct {
	Entry   string `arg:"" help:"Statement ID or unique prefix."`
	Action  string `arg:"" help:"Action ID."`
	Message string `short:"m" help:"Thank-you message." required:""`
}

func (c *ThankCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.Entry)
	if err != nil {
		return err
	}
	a, err := ctx.Statements().SendGratitude(context.Background(), e.ID, c.Action, c.Message)
	if err != nil {
		return err
	}
	ctx.Printf("Gratitude recorded for %q on %s\n", a.Action, a.GratitudeSentDate)
	return nil
}
