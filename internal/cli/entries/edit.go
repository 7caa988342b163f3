package entries

import (
	"context"
	"errors"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/editor"
)

type EditCmd struct {
	ID       string `arg:"" help:"Statement ID or unique prefix."`
	Subject  string `short:"s" help:"New subject."`
	Verb     string `short:"v" help:"New verb id."`
	Object   string `short:"o" help:"New object."`
	Category string `short:"c" help:"New category id."`
	Sharing  string `help:"Share with your manager or keep private." enum:",public,private" default:""`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	e, err := ctx.Entry(c.ID)
	if err != nil {
		return err
	}
	if c.Verb != "" {
		if _, ok := ctx.Taxonomy.Verb(c.Verb); !ok {
			return errors.New("unknown verb: " + c.Verb)
		}
	}

	sessions := editor.NewSessions(ctx.State, ctx.Syncer)
	ed, err := sessions.BeginEdit(e.ID)
	if err != nil {
		return err
	}

	var edits []editor.Edit
	if c.Subject != "" {
		edits = append(edits, editor.SubjectEdit(c.Subject))
	}
	if c.Verb != "" {
		edits = append(edits, editor.VerbEdit(c.Verb))
	}
	if c.Object != "" {
		edits = append(edits, editor.ObjectEdit(c.Object))
	}
	if c.Category != "" {
		edits = append(edits, editor.CategoryEdit(c.Category))
	}
	if c.Sharing != "" {
		edits = append(edits, editor.PrivacyEdit(c.Sharing == "public"))
	}
	for _, edit := range edits {
		if err := ed.Apply(edit); err != nil {
			_ = sessions.Cancel(e.ID)
			return err
		}
	}

	saved, err := sessions.Save(context.Background(), e.ID)
	if errors.Is(err, editor.ErrNothingChanged) {
		_ = sessions.Cancel(e.ID)
		ctx.Println("No changes")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.Printf("Updated statement: %s\n", summary(ctx, saved, false))
	return nil
}
