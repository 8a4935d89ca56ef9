/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package fixer

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Key identifies one generated fix: the same file, code, and line always
// yields the same cached text.
type Key struct {
	FilePath   string
	SmellCode  string
	LineNumber int
}

// Cache is a bounded TTL cache of generated fixes. It is shared across
// requests; concurrent writes of the same key race benignly because the
// value is content-addressed by Key.
type Cache struct {
	entries *ttlcache.Cache[Key, string]
}

// NewCache creates a cache holding at most capacity entries for at most ttl
// each. Callers should Stop it when done.
func NewCache(capacity uint64, ttl time.Duration) *Cache {
	entries := ttlcache.New(
		ttlcache.WithTTL[Key, string](ttl),
		ttlcache.WithCapacity[Key, string](capacity),
	)
	go entries.Start()
	return &Cache{entries: entries}
}

// Get returns the cached fix for key, if present.
func (c *Cache) Get(key Key) (string, bool) {
	item := c.entries.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Set stores a fix under key with the cache's default TTL.
func (c *Cache) Set(key Key, fixed string) {
	c.entries.Set(key, fixed, ttlcache.DefaultTTL)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stop terminates the background expiration loop.
func (c *Cache) Stop() {
	c.entries.Stop()
}
