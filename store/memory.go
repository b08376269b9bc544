package store

import (
	"context"
	"sync"

	"github.com/sicko7947/members"
)

// MemoryStore implements members.MemberStore using in-memory storage (for testing)
type MemoryStore struct {
	members map[string]members.Member
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory member store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members: make(map[string]members.Member),
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]members.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]members.Member, 0, len(s.members))
	for _, member := range s.members {
		result = append(result, member.Clone())
	}

	return result, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (members.Member, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, exists := s.members[id]
	if !exists {
		return nil, false, nil
	}

	return member.Clone(), true, nil
}

func (s *MemoryStore) Put(ctx context.Context, member members.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members[member.ID()] = member.Clone()

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.members, id)

	return nil
}

// Len returns the number of stored members
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.members)
}
