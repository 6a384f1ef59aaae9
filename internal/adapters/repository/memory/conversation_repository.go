package memory

import (
	"context"
	"sync"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

type conversationRepository struct {
	mu    sync.Mutex
	convs map[int64]domain.Conversation
}

func NewConversationRepository() ports.ConversationRepository {
	return &conversationRepository{convs: make(map[int64]domain.Conversation)}
}

func (r *conversationRepository) Get(ctx context.Context, userID int64) domain.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.convs[userID]
}

func (r *conversationRepository) Set(ctx context.Context, userID int64, conv domain.Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.convs[userID] = conv
}

func (r *conversationRepository) Clear(ctx context.Context, userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.convs, userID)
}
