package service

import (
	"context"
	"errors"
	"sync"

	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/repository/memory"
)

var errStoreDown = errors.New("store down")

// failingStore rejects every create.
type failingStore struct {
	*memory.Store
	err error
}

func (f failingStore) CreateWithStudents(context.Context, *model.Upload, []model.Student) error {
	return f.err
}

type memQueue struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (q *memQueue) Enqueue(_ context.Context, key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.keys = append(q.keys, key)
	return nil
}
