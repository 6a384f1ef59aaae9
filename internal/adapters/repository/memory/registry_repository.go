package memory

import (
	"context"
	"sort"
	"sync"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

type adminRegistry struct {
	mu     sync.Mutex
	admins map[int64]struct{}
}

// NewAdminRegistry seeds the registry from configuration. The set can never
// be emptied afterwards: Remove refuses to drop the last entry.
func NewAdminRegistry(seed []int64) ports.AdminRegistry {
	admins := make(map[int64]struct{}, len(seed))
	for _, id := range seed {
		admins[id] = struct{}{}
	}
	return &adminRegistry{admins: admins}
}

func (r *adminRegistry) Add(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[userID]; ok {
		return domain.ErrDuplicate
	}
	r.admins[userID] = struct{}{}
	return nil
}

func (r *adminRegistry) Remove(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[userID]; !ok {
		return domain.ErrAdminNotFound
	}
	if len(r.admins) == 1 {
		return domain.ErrLastAdmin
	}
	delete(r.admins, userID)
	return nil
}

func (r *adminRegistry) Contains(ctx context.Context, userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.admins[userID]
	return ok
}

func (r *adminRegistry) List(ctx context.Context) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, 0, len(r.admins))
	for id := range r.admins {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type channelRegistry struct {
	mu       sync.Mutex
	channels []string
}

// NewChannelRegistry seeds the gating-channel list from configuration.
// Insertion order is preserved so join prompts render consistently.
func NewChannelRegistry(seed []string) ports.ChannelRegistry {
	return &channelRegistry{channels: append([]string(nil), seed...)}
}

func (r *channelRegistry) Add(ctx context.Context, channel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(channel) >= 0 {
		return domain.ErrDuplicate
	}
	r.channels = append(r.channels, channel)
	return nil
}

func (r *channelRegistry) Remove(ctx context.Context, channel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(channel)
	if i < 0 {
		return domain.ErrChannelNotFound
	}
	r.channels = append(r.channels[:i], r.channels[i+1:]...)
	return nil
}

func (r *channelRegistry) Contains(ctx context.Context, channel string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.index(channel) >= 0
}

func (r *channelRegistry) List(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.channels...)
}

func (r *channelRegistry) index(channel string) int {
	for i, ch := range r.channels {
		if ch == channel {
			return i
		}
	}
	return -1
}

type userDirectory struct {
	mu    sync.Mutex
	users map[int64]struct{}
}

func NewUserDirectory() ports.UserDirectory {
	return &userDirectory{users: make(map[int64]struct{})}
}

func (d *userDirectory) Register(ctx context.Context, userID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.users[userID] = struct{}{}
}

func (d *userDirectory) Snapshot(ctx context.Context) []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]int64, 0, len(d.users))
	for id := range d.users {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d *userDirectory) Count(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.users)
}
