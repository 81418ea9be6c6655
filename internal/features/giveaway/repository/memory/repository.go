package memory

import (
	"context"
	"encoding/json"
	"sync"

	"giveaway-bot/internal/features/giveaway/models"
	"giveaway-bot/internal/features/giveaway/repository"
)

// memoryRepository is an in-memory GiveawayRepository used in tests. Records
// are deep-copied on the way in and out so callers cannot mutate stored
// state behind the repository's back.
type memoryRepository struct {
	mu       sync.RWMutex
	open     map[int64]*models.Giveaway
	archived map[string]*models.Giveaway
}

func NewGiveawayRepository() repository.GiveawayRepository {
	return &memoryRepository{
		open:     make(map[int64]*models.Giveaway),
		archived: make(map[string]*models.Giveaway),
	}
}

func clone(g *models.Giveaway) *models.Giveaway {
	data, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}
	out := &models.Giveaway{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	return out
}

func (r *memoryRepository) SaveOpen(_ context.Context, giveaway *models.Giveaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[giveaway.ChannelID] = clone(giveaway)
	return nil
}

func (r *memoryRepository) GetOpenByChannel(_ context.Context, channelID int64) (*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	giveaway, ok := r.open[channelID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(giveaway), nil
}

func (r *memoryRepository) ListOpen(_ context.Context) ([]*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	giveaways := make([]*models.Giveaway, 0, len(r.open))
	for _, giveaway := range r.open {
		giveaways = append(giveaways, clone(giveaway))
	}
	return giveaways, nil
}

func (r *memoryRepository) Archive(_ context.Context, giveaway *models.Giveaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, giveaway.ChannelID)
	r.archived[giveaway.ID] = clone(giveaway)
	return nil
}

func (r *memoryRepository) GetArchived(_ context.Context, giveawayID string) (*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	giveaway, ok := r.archived[giveawayID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(giveaway), nil
}
