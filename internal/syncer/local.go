package syncer

import (
	"context"

	"github.com/foundersandcoders/lift/internal/models"
)

// EntryStore is the statement half of a storage provider.
type EntryStore interface {
	AddEntry(e models.Entry) error
	UpdateEntry(e models.Entry) error
	DeleteEntry(id string) error
}

type localBackend struct {
	store EntryStore
}

// Local adapts a synchronous storage provider into a Backend.
func Local(store EntryStore) Backend {
	return localBackend{store: store}
}

func (b localBackend) CreateEntry(ctx context.Context, e models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.store.AddEntry(e)
}

func (b localBackend) UpdateEntry(ctx context.Context, e models.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.store.UpdateEntry(e)
}

func (b localBackend) DeleteEntry(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.store.DeleteEntry(id)
}
