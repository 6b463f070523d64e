package store

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// Memory is a Repository that round-trips through the same JSON encoding as Store but
// never touches disk. It backs DATA_BACKEND=memory and tests.
type Memory struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string][]byte),
		saves: make(map[string]int),
	}
}

// Put stores a raw payload under a collection name.
func (m *Memory) Put(name string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[name] = payload
}

// Saves reports how many times a collection was written.
func (m *Memory) Saves(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saves[name]
}

func (m *Memory) LoadActive(_ context.Context) ([]*transaction.Transaction, error) {
	payload := m.get(CollectionActive)
	if payload == nil {
		return nil, nil
	}

	return decodeActive(payload)
}

func (m *Memory) SaveActive(_ context.Context, txs []*transaction.Transaction) error {
	payload, err := encodeActive(txs)
	if err != nil {
		return err
	}

	m.put(CollectionActive, payload)

	return nil
}

func (m *Memory) LoadTrash(_ context.Context) ([]*transaction.Trashed, error) {
	payload := m.get(CollectionTrash)
	if payload == nil {
		return nil, nil
	}

	return decodeTrash(payload)
}

func (m *Memory) SaveTrash(_ context.Context, items []*transaction.Trashed) error {
	payload, err := encodeTrash(items)
	if err != nil {
		return err
	}

	m.put(CollectionTrash, payload)

	return nil
}

func (m *Memory) get(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.docs[name]
}

func (m *Memory) put(name string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[name] = payload
	m.saves[name]++
}
