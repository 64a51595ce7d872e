package user

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]User
	byEmail map[string]int64
}

// NewMemoryRepository keeps users in process memory. The email index is
// updated under the same lock as the rows, so concurrent writers race on it
// exactly like on a unique index.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		items:   make(map[int64]User),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, ErrEmailExists
	}

	r.nextID++
	now := time.Now().UTC()

	created := *user
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	r.items[created.ID] = created
	r.byEmail[created.Email] = created.ID

	return &created, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &u, nil
}

func (r *memoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.items))
	for _, u := range r.items {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, patch Patch) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.IsEmpty() {
		return &u, nil
	}

	if patch.Email != nil && *patch.Email != u.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, ErrEmailExists
		}
		delete(r.byEmail, u.Email)
		r.byEmail[*patch.Email] = id
	}

	patch.Apply(&u)
	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return &u, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}

	delete(r.items, id)
	delete(r.byEmail, u.Email)

	return nil
}

func (r *memoryRepository) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	return ok && id != exceptID, nil
}
