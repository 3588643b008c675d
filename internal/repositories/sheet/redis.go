package sheet

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/greyweave/charsheet/internal/entities/dnd5e"
	"github.com/greyweave/charsheet/internal/errors"
	redisclient "github.com/greyweave/charsheet/internal/redis"
)

const (
	sheetKeyPrefix = "sheet:"
	sheetIndexKey  = "sheet:index"
	defaultTTL     = 24 * time.Hour
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed sheet repository. Sheets are
// stored as JSON with a TTL so abandoned sheets expire on their own.
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
		ttl:    defaultTTL,
	}
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	data, err := json.Marshal(input.Sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal sheet")
	}

	key := sheetKeyPrefix + input.Sheet.ID
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.SAdd(ctx, sheetIndexKey, input.Sheet.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create sheet")
	}

	return &CreateOutput{Sheet: input.Sheet}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	result, err := r.client.Get(ctx, sheetKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("sheet %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get sheet")
	}

	var s dnd5e.CharacterSheet
	if err := json.Unmarshal([]byte(result), &s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sheet")
	}

	return &GetOutput{Sheet: &s}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	key := sheetKeyPrefix + input.Sheet.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check sheet existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("sheet %s not found", input.Sheet.ID)
	}

	data, err := json.Marshal(input.Sheet)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal sheet")
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update sheet")
	}

	return &UpdateOutput{Sheet: input.Sheet}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	deleted, err := r.client.Del(ctx, sheetKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete sheet")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("sheet %s not found", input.ID)
	}
	r.client.SRem(ctx, sheetIndexKey, input.ID)

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, sheetIndexKey).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to read sheet index", "error", err)
		return nil, errors.Wrap(err, "failed to list sheet IDs")
	}
	sort.Strings(ids)

	sheets := make([]*dnd5e.CharacterSheet, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Expired sheets linger in the index; drop them lazily.
			if errors.IsNotFound(err) {
				slog.DebugContext(ctx, "dropping expired sheet from index", "sheet_id", id)
				r.client.SRem(ctx, sheetIndexKey, id)
				continue
			}
			return nil, err
		}
		sheets = append(sheets, out.Sheet)
	}

	return &ListOutput{Sheets: sheets}, nil
}
