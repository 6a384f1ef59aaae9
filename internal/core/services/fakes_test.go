package services

import (
	"context"
	"sync"

	"ovozbot/internal/core/ports"
)

// fakeTransport records outbound traffic and lets tests script failures.
type fakeTransport struct {
	mu sync.Mutex

	membershipFn func(channel string, userID int64) (ports.MembershipStatus, error)
	copyFn       func(userID int64) error
	sendTextFn   func(userID int64) error

	texts           map[int64][]string
	copies          []int64
	membershipCalls int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{texts: make(map[int64][]string)}
}

func (f *fakeTransport) SendText(ctx context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendTextFn != nil {
		if err := f.sendTextFn(userID); err != nil {
			return err
		}
	}
	f.texts[userID] = append(f.texts[userID], text)
	return nil
}

func (f *fakeTransport) SendMedia(ctx context.Context, userID int64, mediaRef, caption string) error {
	return nil
}

func (f *fakeTransport) GetMembership(ctx context.Context, channel string, userID int64) (ports.MembershipStatus, error) {
	f.mu.Lock()
	f.membershipCalls++
	fn := f.membershipFn
	f.mu.Unlock()
	if fn != nil {
		return fn(channel, userID)
	}
	return ports.StatusMember, nil
}

func (f *fakeTransport) CopyMessageToUser(ctx context.Context, userID int64, msg ports.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.copyFn != nil {
		if err := f.copyFn(userID); err != nil {
			return err
		}
	}
	f.copies = append(f.copies, userID)
	return nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.membershipCalls
}

func (f *fakeTransport) copiedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.copies)
}

func (f *fakeTransport) textsFor(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts[userID]...)
}
