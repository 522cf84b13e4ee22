package profiles

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepo) Update(ctx context.Context, userID string, fn func(*Profile) error) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p, ok := r.profiles[userID]
	if !ok {
		p = Profile{UserID: userID, CreatedAt: now}
	}
	p = clone(p)
	if err := fn(&p); err != nil {
		return Profile{}, err
	}
	p.UserID = userID
	p.UpdatedAt = now
	r.profiles[userID] = p
	return clone(p), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

func clone(p Profile) Profile {
	if p.ATSScore != nil {
		v := *p.ATSScore
		p.ATSScore = &v
	}
	return p
}
