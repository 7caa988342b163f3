package system

import (
	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/store"
)

type UserCmd struct {
	Set  UserSetCmd  `cmd:"" help:"Update your name, email and manager."`
	Show UserShowCmd `cmd:"" help:"Show your identity settings." default:"1"`
}

type UserSetCmd struct {
	Name         string `help:"Your name, used as the default subject."`
	Email        string `help:"Your email address."`
	ManagerName  string `help:"Your manager's name."`
	ManagerEmail string `help:"Your manager's email address."`
}

func (c *UserSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	if c.Name != "" {
		ctx.State.Dispatch(store.SetUsername{Username: c.Name})
	}
	if c.Email != "" {
		ctx.State.Dispatch(store.SetUserEmail{Email: c.Email})
	}
	if c.ManagerName != "" {
		ctx.State.Dispatch(store.SetManagerName{Name: c.ManagerName})
	}
	if c.ManagerEmail != "" {
		ctx.State.Dispatch(store.SetManagerEmail{Email: c.ManagerEmail})
	}
	if err := ctx.SaveSettings(); err != nil {
		return err
	}
	ctx.Println("Settings saved")
	return nil
}

type UserShowCmd struct{}

func (c *UserShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	s := ctx.State.State().Settings()
	show := func(label, v string) {
		if v == "" {
			v = "(not set)"
		}
		ctx.Printf("  %-14s %s\n", label+":", v)
	}
	show("Name", s.Username)
	show("Email", s.UserEmail)
	show("Manager", s.ManagerName)
	show("Manager email", s.ManagerEmail)
	return nil
}
