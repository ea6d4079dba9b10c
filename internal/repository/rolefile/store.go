package rolefile

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"schedulebot/internal/domain"
)

// Store persists the role document as a JSON file with two flat lists,
// admins and members. Every Load reads the file fresh; a missing or corrupt
// file yields empty lists instead of an error. The mutex only serializes
// callers within this process; concurrent writers in other processes are
// last-writer-wins.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a RoleStore reading and writing the JSON document at path.
func New(path string) domain.RoleStore {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) (*domain.RoleList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		// No roles yet. Initialize the file; the read itself must not fail.
		roles := emptyRoleList()
		_ = s.write(roles)
		return roles, nil
	}

	roles := &domain.RoleList{}
	if err := json.Unmarshal(b, roles); err != nil {
		return emptyRoleList(), nil
	}
	if roles.Admins == nil {
		roles.Admins = []int64{}
	}
	if roles.Members == nil {
		roles.Members = []int64{}
	}
	return roles, nil
}

func (s *Store) Save(ctx context.Context, roles *domain.RoleList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(roles)
}

func (s *Store) write(roles *domain.RoleList) error {
	b, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func emptyRoleList() *domain.RoleList {
	return &domain.RoleList{Admins: []int64{}, Members: []int64{}}
}
