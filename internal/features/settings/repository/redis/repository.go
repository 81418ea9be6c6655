package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"giveaway-bot/internal/features/settings/models"
	"giveaway-bot/internal/features/settings/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixSettings = "settings:"
	keyPrefixDialog   = "settings:dialog:"

	// Abandoned dialogs expire instead of trapping the user's next message
	// forever.
	dialogTTL = 10 * time.Minute
)

type redisRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) repository.SettingsRepository {
	return &redisRepository{client: client}
}

func makeSettingsKey(ownerID int64) string {
	return keyPrefixSettings + strconv.FormatInt(ownerID, 10)
}

func makeDialogKey(userID int64) string {
	return keyPrefixDialog + strconv.FormatInt(userID, 10)
}

func (r *redisRepository) Get(ctx context.Context, ownerID int64) (*models.Settings, error) {
	data, err := r.client.Get(ctx, makeSettingsKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *redisRepository) Save(ctx context.Context, settings *models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return r.client.Set(ctx, makeSettingsKey(settings.OwnerID), data, 0).Err()
}

func (r *redisRepository) GetDialogState(ctx context.Context, userID int64) (models.DialogState, error) {
	state, err := r.client.Get(ctx, makeDialogKey(userID)).Result()
	if err == redis.Nil {
		return models.DialogIdle, nil
	}
	if err != nil {
		return models.DialogIdle, err
	}
	return models.DialogState(state), nil
}

func (r *redisRepository) SetDialogState(ctx context.Context, userID int64, state models.DialogState) error {
	return r.client.Set(ctx, makeDialogKey(userID), string(state), dialogTTL).Err()
}

func (r *redisRepository) ClearDialogState(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, makeDialogKey(userID)).Err()
}
