// Package syncer pushes store changes to a persistence backend in the
// background. The store is updated optimistically; failures are retried and
// then recorded as unsynced rather than rolled back.
package syncer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/foundersandcoders/lift/internal/logger"
	"github.com/foundersandcoders/lift/internal/models"
)

// Backend persists statements.
type Backend interface {
	CreateEntry(ctx context.Context, e models.Entry) error
	UpdateEntry(ctx context.Context, e models.Entry) error
	DeleteEntry(ctx context.Context, id string) error
}

// Op names a persistence call.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// PrimaryBackend names the backend passed to New.
const PrimaryBackend = "store"

// Failure records the last call for an entry that a backend could not
// persist.
type Failure struct {
	Op      Op
	EntryID string
	Backend string
	Err     error
	At      time.Time
}

type target struct {
	name    string
	backend Backend
}

type call struct {
	op  Op
	run func(ctx context.Context, b Backend) error
}

// lane queues the pending calls for one entry on one backend.
type lane struct {
	target target
	id     string
	queue  []call
}

// Syncer drains one FIFO lane per entry and backend. Calls for the same
// entry reach a backend in submit order, a retrying call holding back the
// ones behind it. Different entries proceed concurrently. A nil *Syncer
// drops every call.
type Syncer struct {
	targets []target
	policy  Policy
	sleep   sleepFunc
	now     func() time.Time

	wg       sync.WaitGroup
	mu       sync.Mutex
	lanes    map[string]*lane
	unsynced map[string]Failure
}

// New creates a syncer for backend.
func New(backend Backend, policy Policy) *Syncer {
	var targets []target
	if backend != nil {
		targets = append(targets, target{name: PrimaryBackend, backend: backend})
	}
	return &Syncer{
		targets:  targets,
		policy:   policy.withDefaults(),
		sleep:    sleepContext,
		now:      time.Now,
		lanes:    make(map[string]*lane),
		unsynced: make(map[string]Failure),
	}
}

// Mirror adds a backend that receives every later call. Each backend is
// retried and tracked on its own.
func (s *Syncer) Mirror(name string, b Backend) *Syncer {
	if b != nil {
		s.targets = append(s.targets, target{name: name, backend: b})
	}
	return s
}

// CreateEntry submits a create call without waiting for it.
func (s *Syncer) CreateEntry(e models.Entry) {
	e = e.Clone()
	s.submit(OpCreate, e.ID, func(ctx context.Context, b Backend) error {
		return b.CreateEntry(ctx, e)
	})
}

// UpdateEntry submits an update call without waiting for it.
func (s *Syncer) UpdateEntry(e models.Entry) {
	e = e.Clone()
	s.submit(OpUpdate, e.ID, func(ctx context.Context, b Backend) error {
		return b.UpdateEntry(ctx, e)
	})
}

// DeleteEntry submits a delete call without waiting for it.
func (s *Syncer) DeleteEntry(id string) {
	s.submit(OpDelete, id, func(ctx context.Context, b Backend) error {
		return b.DeleteEntry(ctx, id)
	})
}

func (s *Syncer) submit(op Op, id string, run func(ctx context.Context, b Backend) error) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.targets {
		s.wg.Add(1)
		key := t.name + "/" + id
		l, ok := s.lanes[key]
		if !ok {
			l = &lane{target: t, id: id}
			s.lanes[key] = l
			go s.drain(key, l)
		}
		l.queue = append(l.queue, call{op: op, run: run})
	}
}

// drain runs the lane's calls one at a time and retires the lane once its
// queue is empty.
func (s *Syncer) drain(key string, l *lane) {
	for {
		s.mu.Lock()
		if len(l.queue) == 0 {
			delete(s.lanes, key)
			s.mu.Unlock()
			return
		}
		c := l.queue[0]
		l.queue = l.queue[1:]
		s.mu.Unlock()

		err := withRetry(context.Background(), s.policy, s.sleep, func(ctx context.Context) error {
			return c.run(ctx, l.target.backend)
		})
		s.record(l.target.name, c.op, l.id, err)
		s.wg.Done()
	}
}

func (s *Syncer) record(backend string, op Op, id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := backend + "/" + id
	if err == nil {
		delete(s.unsynced, key)
		logger.Debug("statement synced", "backend", backend, "op", op, "id", id)
		return
	}
	s.unsynced[key] = Failure{Op: op, EntryID: id, Backend: backend, Err: err, At: s.now()}
	logger.Error("statement not synced", "backend", backend, "op", op, "id", id, "error", err)
}

// Unsynced lists entries whose most recent call failed, oldest first.
func (s *Syncer) Unsynced() []Failure {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Failure, 0, len(s.unsynced))
	for _, f := range s.unsynced {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.Before(out[j].At)
		}
		if out[i].EntryID != out[j].EntryID {
			return out[i].EntryID < out[j].EntryID
		}
		return out[i].Backend < out[j].Backend
	})
	return out
}

// Wait blocks until every submitted call has finished.
func (s *Syncer) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}
