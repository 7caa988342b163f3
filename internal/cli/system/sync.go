package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foundersandcoders/lift/internal/cli"
	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/syncer"
)

type SyncCmd struct {
	Status SyncStatusCmd `cmd:"" help:"Show where statements are saved." default:"1"`
	Push   SyncPushCmd   `cmd:"" help:"Send every local statement to the remote API."`
	Pull   SyncPullCmd   `cmd:"" help:"Fill an empty local store from the remote API."`
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *cli.Context) error {
	p := ctx.Config.Policy()
	ctx.Printf("Storage:  %s\n", ctx.Store.GetConfigPath())
	if ctx.Remote != nil {
		ctx.Printf("Remote:   %s\n", ctx.Config.APIURL)
	} else {
		ctx.Println("Remote:   (not configured)")
	}
	ctx.Printf("Retries:  %d attempts, %s initial delay, x%.1f, %s cap, %s timeout\n",
		p.MaxAttempts, p.InitialDelay, p.Multiplier, p.MaxDelay, p.Timeout)
	return nil
}

type SyncPushCmd struct{}

func (c *SyncPushCmd) Run(ctx *cli.Context) error {
	if ctx.Remote == nil {
		return errors.New("no remote API configured; set --api-url or api_url in the config file")
	}
	if err := ctx.Open(); err != nil {
		return err
	}

	push := syncer.New(ctx.Remote.Upsert(), ctx.Config.Policy())
	entries := ctx.State.State().Entries
	start := time.Now()
	for _, e := range entries {
		push.UpdateEntry(e)
	}
	push.Wait()

	failed := push.Unsynced()
	for _, f := range failed {
		ctx.Printf("  %s: %v\n", f.EntryID, f.Err)
	}
	ctx.Printf("Pushed %d of %d statements in %s\n", len(entries)-len(failed), len(entries), time.Since(start).Round(time.Millisecond))
	if len(failed) > 0 {
		return errors.New("some statements were not pushed")
	}
	return nil
}

type SyncPullCmd struct {
	Subject string `help:"Subject whose statements to fetch. Defaults to the configured username."`
}

func (c *SyncPullCmd) Run(ctx *cli.Context) error {
	if ctx.Remote == nil {
		return errors.New("no remote API configured; set --api-url or api_url in the config file")
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	if n := len(ctx.State.State().Entries); n > 0 {
		return fmt.Errorf("local store already holds %d statements; pull only fills an empty store", n)
	}
	subject := c.Subject
	if subject == "" {
		subject = ctx.State.State().Username
	}
	if subject == "" {
		return errors.New("no subject to pull; pass --subject or set a username")
	}

	var fetched []models.Entry
	err := syncer.WithRetry(context.Background(), ctx.Config.Policy(), func(rctx context.Context) error {
		var err error
		fetched, err = ctx.Remote.ListEntries(rctx, subject)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to fetch statements: %w", err)
	}

	entries := make([]models.Entry, 0, len(fetched))
	for _, e := range fetched {
		e = e.Normalize()
		if err := e.Validate(); err != nil {
			ctx.Printf("  skipped %s: %v\n", e.ID, err)
			continue
		}
		entries = append(entries, e)
	}
	if !ctx.State.SeedDefaults(entries) {
		return errors.New("local store changed while pulling; nothing saved")
	}
	// local copies only; the remote already has them
	local := syncer.New(syncer.Local(ctx.Store), ctx.Config.Policy())
	for _, e := range entries {
		local.CreateEntry(e)
	}
	local.Wait()
	ctx.Questions.Sync(entries)

	if failed := local.Unsynced(); len(failed) > 0 {
		for _, f := range failed {
			ctx.Printf("  %s: %v\n", f.EntryID, f.Err)
		}
		return fmt.Errorf("%d of %d statements were not saved locally", len(failed), len(entries))
	}
	ctx.Printf("Pulled %d statements for %s\n", len(entries), subject)
	return nil
}
