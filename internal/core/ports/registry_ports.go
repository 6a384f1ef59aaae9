package ports

import "context"

// AdminRegistry holds the mutable set of admin user ids. Remove refuses to
// empty the set; refusing self-removal is the caller's concern since the
// registry does not know who is asking.
type AdminRegistry interface {
	Add(ctx context.Context, userID int64) error
	Remove(ctx context.Context, userID int64) error
	Contains(ctx context.Context, userID int64) bool
	List(ctx context.Context) []int64
}

// ChannelRegistry holds the mutable set of gating channels, already
// normalized to their canonical form.
type ChannelRegistry interface {
	Add(ctx context.Context, channel string) error
	Remove(ctx context.Context, channel string) error
	Contains(ctx context.Context, channel string) bool
	List(ctx context.Context) []string
}

// UserDirectory records every user that ever interacted with the bot.
// It is the broadcast recipient universe and is never pruned.
type UserDirectory interface {
	Register(ctx context.Context, userID int64)
	Snapshot(ctx context.Context) []int64
	Count(ctx context.Context) int
}
