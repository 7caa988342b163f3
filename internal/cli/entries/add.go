package entries

import (
	"context"
	"fmt"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/statements"
	"github.com/foundersandcoders/lift/internal/wizard"
)

type AddCmd struct {
	Object     string `arg:"" help:"What the statement is about."`
	Verb       string `short:"v" help:"Verb id (see 'lift verbs')."`
	Subject    string `short:"s" help:"Subject. Defaults to your username."`
	Category   string `short:"c" help:"Category id (see 'lift categories')."`
	Public     bool   `short:"p" help:"Share the statement with your manager."`
	Complement string `help:"Extra words appended to the statement."`
	Preset     string `help:"Answer a preset question by id (see 'lift question list')."`
	Force      bool   `short:"f" help:"Add even when the same statement already exists."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	var preset *models.SetQuestion
	if c.Preset != "" {
		q, err := ctx.Questions.Question(c.Preset)
		if err != nil {
			return err
		}
		if ctx.Questions.Used(q.ID) {
			return fmt.Errorf("question %s is already answered; reset that statement first", q.ID)
		}
		preset = &q
	}

	w := ctx.Wizard(preset)
	if !c.Force {
		atoms := w.Draft().Atoms
		if c.Subject != "" {
			atoms.Subject = c.Subject
		}
		if c.Verb != "" {
			atoms.Verb = c.Verb
		}
		atoms.Object = c.Object
		if dup, ok := statements.FindDuplicate(ctx.State.State().Entries, atoms); ok {
			return fmt.Errorf("statement already exists (ID: %s); use --force to add it anyway", dup.ID)
		}
	}

	public := c.Public
	entry, err := w.Submit(context.Background(), wizard.Answers{
		Category:   c.Category,
		Subject:    c.Subject,
		Verb:       c.Verb,
		Object:     c.Object,
		Public:     &public,
		Complement: c.Complement,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added statement: %s (ID: %s)\n", statements.Display(entry, ctx.Taxonomy), entry.ID)
	return nil
}
