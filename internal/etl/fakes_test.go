package etl_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/model"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/repository"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/blob"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/mq"
)

// fakeDB only implements the scoped read used by Extract; any other call
// panics on the nil embedded interface.
type fakeDB struct {
	db.DB

	healthErr error
	txErr     error

	acquired int
	released int
}

func (f *fakeDB) ReadSnapshot(_ context.Context, readFunc func(db.DB) error) error {
	f.acquired++
	defer func() { f.released++ }()

	if f.txErr != nil {
		return f.txErr
	}
	return readFunc(f)
}

func (f *fakeDB) Ping(_ context.Context) error {
	return f.healthErr
}

type fakeProductRepo struct {
	products []model.ProductRecord
	err      error

	since time.Time
	calls int
}

func (r *fakeProductRepo) WithDB(_ db.DB) repository.ProductRepository {
	return r
}

func (r *fakeProductRepo) ListProductsCreatedSince(_ context.Context, since time.Time) ([]model.ProductRecord, error) {
	r.calls++
	r.since = since
	if r.err != nil {
		return nil, r.err
	}
	return r.products, nil
}

type memoryStore struct {
	mu      sync.Mutex
	objects map[string]blob.Object
	puts    int
	err     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string]blob.Object{}}
}

func (m *memoryStore) Put(_ context.Context, obj blob.Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	if m.err != nil {
		return m.err
	}
	m.objects[obj.Key] = obj
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return obj.Body, nil
}

func (m *memoryStore) Location(key string) string {
	return fmt.Sprintf("mem://reports/%s", key)
}

type fakeProducer struct {
	msgs []mq.ProduceMsg
	err  error
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}
