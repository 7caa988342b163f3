package questions

import (
	"github.com/foundersandcoders/lift/internal/cli"
)

type QuestionCmd struct {
	List   ListCmd   `cmd:"" help:"List preset questions." default:"1"`
	Snooze SnoozeCmd `cmd:"" help:"Snooze or unsnooze a preset question."`
}

type ListCmd struct {
	All bool `help:"Include answered and snoozed questions."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	qs := ctx.Questions
	total := len(qs.All())
	ctx.Printf("Answered %d of %d questions\n\n", qs.AnsweredCount(ctx.State.State().Entries), total)

	for _, g := range qs.Grouped() {
		ctx.Printf("%s:\n", ctx.Taxonomy.CategoryDisplayName(g.Category))
		for _, q := range g.Questions {
			ctx.Printf("  %s  %s\n", q.ID, q.MainQuestion)
		}
	}
	if !c.All {
		return nil
	}

	if snoozed := qs.Snoozed(); len(snoozed) > 0 {
		ctx.Println("\nSnoozed:")
		for _, q := range snoozed {
			ctx.Printf("  %s  %s\n", q.ID, q.MainQuestion)
		}
	}
	var answered []string
	for _, q := range qs.All() {
		if qs.Used(q.ID) {
			answered = append(answered, q.ID)
		}
	}
	if len(answered) > 0 {
		ctx.Println("\nAnswered:")
		for _, id := range answered {
			q, _ := qs.Question(id)
			ctx.Printf("  %s  %s\n", q.ID, q.MainQuestion)
		}
	}
	return nil
}

type SnoozeCmd struct {
	ID string `arg:"" help:"Question ID."`
}

func (c *SnoozeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	q, err := ctx.Questions.ToggleSnooze(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.SaveSettings(); err != nil {
		return err
	}
	if q.IsSnoozed {
		ctx.Printf("Snoozed %s\n", q.ID)
	} else {
		ctx.Printf("Unsnoozed %s (back in %s)\n", q.ID, ctx.Taxonomy.CategoryDisplayName(q.Category))
	}
	return nil
}
