package memory

import (
	"context"
	"time"

	"customer-insight-be/internal/entity"
	"customer-insight-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ProposalCache struct {
	cache *cache.Cache
}

func NewProposalCache(ttl time.Duration) contract.ProposalCache {
	return &ProposalCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *ProposalCache) Save(ctx context.Context, proposal *entity.ProfileUpdateProposal) error {
	c.cache.Set(proposal.Id.String(), proposal, cache.DefaultExpiration)
	return nil
}

func (c *ProposalCache) Get(ctx context.Context, id uuid.UUID) (*entity.ProfileUpdateProposal, error) {
	if x, found := c.cache.Get(id.String()); found {
		return x.(*entity.ProfileUpdateProposal), nil
	}
	return nil, nil
}

func (c *ProposalCache) Delete(ctx context.Context, id uuid.UUID) error {
	c.cache.Delete(id.String())
	return nil
}
