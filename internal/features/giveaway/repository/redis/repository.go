package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"giveaway-bot/internal/features/giveaway/models"
	"giveaway-bot/internal/features/giveaway/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefixChannel = "giveaway:channel:"
	keyPrefixArchive = "giveaway:archive:"
	keyOpenChannels  = "giveaways:open"
	archiveRetention = 30 * 24 * time.Hour
)

type redisRepository struct {
	client *redis.Client
}

func NewGiveawayRepository(client *redis.Client) repository.GiveawayRepository {
	return &redisRepository{client: client}
}

func makeChannelKey(channelID int64) string {
	return keyPrefixChannel + strconv.FormatInt(channelID, 10)
}

func makeArchiveKey(giveawayID string) string {
	return keyPrefixArchive + giveawayID
}

func (r *redisRepository) SaveOpen(ctx context.Context, giveaway *models.Giveaway) error {
	data, err := json.Marshal(giveaway)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeChannelKey(giveaway.ChannelID), data, 0)
	pipe.SAdd(ctx, keyOpenChannels, giveaway.ChannelID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetOpenByChannel(ctx context.Context, channelID int64) (*models.Giveaway, error) {
	data, err := r.client.Get(ctx, makeChannelKey(channelID)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var giveaway models.Giveaway
	if err := json.Unmarshal(data, &giveaway); err != nil {
		return nil, err
	}

	return &giveaway, nil
}

func (r *redisRepository) ListOpen(ctx context.Context) ([]*models.Giveaway, error) {
	members, err := r.client.SMembers(ctx, keyOpenChannels).Result()
	if err != nil {
		return nil, err
	}

	giveaways := make([]*models.Giveaway, 0, len(members))
	for _, member := range members {
		channelID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt open index entry %q: %w", member, err)
		}
		giveaway, err := r.GetOpenByChannel(ctx, channelID)
		if err == repository.ErrNotFound {
			// Index entry without a record, drop it.
			r.client.SRem(ctx, keyOpenChannels, member)
			continue
		}
		if err != nil {
			return nil, err
		}
		giveaways = append(giveaways, giveaway)
	}
	return giveaways, nil
}

func (r *redisRepository) Archive(ctx context.Context, giveaway *models.Giveaway) error {
	data, err := json.Marshal(giveaway)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, makeChannelKey(giveaway.ChannelID))
	pipe.SRem(ctx, keyOpenChannels, giveaway.ChannelID)
	pipe.Set(ctx, makeArchiveKey(giveaway.ID), data, archiveRetention)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetArchived(ctx context.Context, giveawayID string) (*models.Giveaway, error) {
	data, err := r.client.Get(ctx, makeArchiveKey(giveawayID)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var giveaway models.Giveaway
	if err := json.Unmarshal(data, &giveaway); err != nil {
		return nil, err
	}

	return &giveaway, nil
}
