package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"faq-bot/internal/domain"
)

const defaultShards = 32

// MemoryStore keeps conversations in process memory. Keys are spread over
// independently locked shards so unrelated conversations do not contend.
type MemoryStore struct {
	shards []*memoryShard
}

type memoryShard struct {
	mu    sync.RWMutex
	convs map[string]domain.Conversation
}

// NewMemoryStore creates a MemoryStore with the given shard count (<= 0 uses the default).
func NewMemoryStore(shards int) *MemoryStore {
	if shards <= 0 {
		shards = defaultShards
	}
	s := &MemoryStore{shards: make([]*memoryShard, shards)}
	for i := range s.shards {
		s.shards[i] = &memoryShard{convs: make(map[string]domain.Conversation)}
	}
	return s
}

func (s *MemoryStore) shard(id string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Conversation, bool, error) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	conv, ok := sh.convs[id]
	return conv, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, conv domain.Conversation) error {
	sh := s.shard(conv.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.convs[conv.ID] = conv
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	sh := s.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.convs, id)
	return nil
}

// Len returns the number of stored conversations.
func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.convs)
		sh.mu.RUnlock()
	}
	return n
}
