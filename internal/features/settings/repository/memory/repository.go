package memory

import (
	"context"
	"sync"

	"giveaway-bot/internal/features/settings/models"
	"giveaway-bot/internal/features/settings/repository"
)

// memoryRepository is an in-memory SettingsRepository used in tests.
type memoryRepository struct {
	mu       sync.RWMutex
	settings map[int64]models.Settings
	dialogs  map[int64]models.DialogState
}

func NewSettingsRepository() repository.SettingsRepository {
	return &memoryRepository{
		settings: make(map[int64]models.Settings),
		dialogs:  make(map[int64]models.DialogState),
	}
}

func (r *memoryRepository) Get(_ context.Context, ownerID int64) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	settings, ok := r.settings[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &settings, nil
}

func (r *memoryRepository) Save(_ context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[settings.OwnerID] = *settings
	return nil
}

func (r *memoryRepository) GetDialogState(_ context.Context, userID int64) (models.DialogState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.dialogs[userID]
	if !ok {
		return models.DialogIdle, nil
	}
	return state, nil
}

func (r *memoryRepository) SetDialogState(_ context.Context, userID int64, state models.DialogState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialogs[userID] = state
	return nil
}

func (r *memoryRepository) ClearDialogState(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dialogs, userID)
	return nil
}
