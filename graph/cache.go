// Copyright 2026 Quantabase
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package graph

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a cached graph stays fresh without invalidation.
const DefaultTTL = 5 * time.Minute

// Cache memoizes graph builds. A cached graph is served until its TTL
// expires or Invalidate is called; writers call Invalidate after any
// mutation that changes graph shape (new classes, datasets, embeddings).
type Cache struct {
	builder *Builder
	ttl     time.Duration

	mu      sync.Mutex
	graph   *Graph
	builtAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the cache freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCache wraps a builder with TTL-based memoization.
func NewCache(builder *Builder, opts ...CacheOption) *Cache {
	c := &Cache{
		builder: builder,
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Graph returns the cached graph, rebuilding when the previous build is
// stale or has been invalidated. Concurrent callers serialize on the
// rebuild; only one build runs at a time.
func (c *Cache) Graph(ctx context.Context) (*Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.graph != nil && time.Since(c.builtAt) < c.ttl {
		return c.graph, nil
	}

	g, err := c.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	c.graph = g
	c.builtAt = time.Now()
	return g, nil
}

// Invalidate drops the cached graph; the next Graph call rebuilds.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.graph = nil
	c.mu.Unlock()
}
