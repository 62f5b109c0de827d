package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/alexanderramin/cycleboard/internal/app"
	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/alexanderramin/cycleboard/internal/importer"
	"github.com/alexanderramin/cycleboard/internal/repository"
)

// snapshotCacheSize bounds how many parsed snapshots stay in memory.
const snapshotCacheSize = 4

// snapshotLoader resolves a snapshot id to nested data. Every lookup goes
// through the repo, so pruned snapshots are never served. Parsed results
// are memoised by id, evicting the least recently used.
type snapshotLoader struct {
	snapshots repository.SnapshotRepo
	capacity  int

	mu    sync.Mutex
	cache map[string]*loadedSnapshot
	order []string // least recently used first
}

type loadedSnapshot struct {
	snapshot *domain.Snapshot
	data     domain.NestedCycleData
}

func newSnapshotLoader(snapshots repository.SnapshotRepo) *snapshotLoader {
	return &snapshotLoader{
		snapshots: snapshots,
		capacity:  snapshotCacheSize,
		cache:     make(map[string]*loadedSnapshot),
	}
}

func (l *snapshotLoader) load(ctx context.Context, id string) (*loadedSnapshot, error) {
	var snap *domain.Snapshot
	var err error
	if id == "" {
		snap, err = l.snapshots.Latest(ctx)
	} else {
		snap, err = l.snapshots.GetByID(ctx, id)
	}
	if errors.Is(err, repository.ErrNotFound) {
		if id != "" {
			l.forget(id)
		}
		msg := "no extract has been imported; run `cycleboard import <file>` first"
		if id != "" {
			msg = fmt.Sprintf("snapshot %q does not exist", id)
		}
		return nil, &app.BoardError{Code: app.BoardErrNoSnapshot, Message: msg}
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if cached := l.cached(snap.ID); cached != nil {
		return cached, nil
	}

	raw, err := importer.ParseRawCycleData(snap.Raw)
	if err != nil {
		return nil, &app.BoardError{
			Code:    app.BoardErrCorruptSnapshot,
			Message: fmt.Sprintf("snapshot %s: %v", snap.ID, err),
		}
	}
	loaded := &loadedSnapshot{snapshot: snap, data: importer.Nest(raw)}
	l.store(snap.ID, loaded)
	return loaded, nil
}

func (l *snapshotLoader) cached(id string) *loadedSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	loaded, ok := l.cache[id]
	if ok {
		l.touch(id)
	}
	return loaded
}

func (l *snapshotLoader) store(id string, loaded *loadedSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[id]; !ok && len(l.order) >= l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.cache, oldest)
	}
	l.cache[id] = loaded
	l.touch(id)
}

func (l *snapshotLoader) forget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, id)
	l.order = slices.DeleteFunc(l.order, func(s string) bool { return s == id })
}

// touch moves id to the most recently used end. Callers hold mu.
func (l *snapshotLoader) touch(id string) {
	l.order = slices.DeleteFunc(l.order, func(s string) bool { return s == id })
	l.order = append(l.order, id)
}
