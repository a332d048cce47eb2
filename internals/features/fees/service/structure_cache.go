package service

import (
	"context"
	"errors"
	"sync"

	"hostelku_backend/internals/clients/hms"
	"hostelku_backend/internals/features/fees/allocation"
	"hostelku_backend/internals/features/fees/model"
)

// StructureSource is the backend lookup the cache reads through.
type StructureSource interface {
	GetFeeStructure(ctx context.Context, academicYear, category string) (model.FeeStructure, error)
}

// StructureCache is the portal's one piece of client-held state: created
// empty at startup, populated on miss, grows monotonically, never evicted.
// Fee structures are immutable reference data within a session.
type StructureCache struct {
	mu      sync.Mutex
	source  StructureSource
	entries map[string]model.FeeStructure
}

func NewStructureCache(source StructureSource) *StructureCache {
	return &StructureCache{
		source:  source,
		entries: make(map[string]model.FeeStructure),
	}
}

// Get returns the structure for (academicYear, category), fetching it from
// the backend on first use. A backend 404 is reported as
// allocation.ErrNoFeeStructure so callers surface the admin-contact message
// instead of treating it as a zero-fee structure.
func (c *StructureCache) Get(ctx context.Context, academicYear, category string) (*model.FeeStructure, error) {
	key := model.CacheKey(academicYear, category)

	c.mu.Lock()
	if fs, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return &fs, nil
	}
	c.mu.Unlock()

	fs, err := c.source.GetFeeStructure(ctx, academicYear, category)
	if errors.Is(err, hms.ErrNotFound) {
		return nil, allocation.ErrNoFeeStructure
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = fs
	c.mu.Unlock()
	return &fs, nil
}

// Len is used by tests and the health endpoint.
func (c *StructureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
