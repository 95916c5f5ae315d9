// Package cache holds the redis-backed proposal cache used when several API
// instances share review traffic.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const proposalKeyPrefix = "proposal:"

type RedisProposalCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProposalCache(rdb *redis.Client, ttl time.Duration) contract.ProposalCache {
	return &RedisProposalCache{rdb: rdb, ttl: ttl}
}

func proposalKey(id uuid.UUID) string {
	return proposalKeyPrefix + id.String()
}

func (c *RedisProposalCache) Save(ctx context.Context, proposal *entity.ProfileUpdateProposal) error {
	data, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("encode proposal %s: %w", proposal.Id, err)
	}
	return c.rdb.Set(ctx, proposalKey(proposal.Id), data, c.ttl).Err()
}

func (c *RedisProposalCache) Get(ctx context.Context, id uuid.UUID) (*entity.ProfileUpdateProposal, error) {
	data, err := c.rdb.Get(ctx, proposalKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var proposal entity.ProfileUpdateProposal
	if err := json.Unmarshal(data, &proposal); err != nil {
		return nil, fmt.Errorf("decode proposal %s: %w", id, err)
	}
	return &proposal, nil
}

func (c *RedisProposalCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, proposalKey(id)).Err()
}
