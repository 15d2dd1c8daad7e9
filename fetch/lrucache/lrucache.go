// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of raw catalogue bytes keyed by resource name.

When created with compression enabled via [New], payloads are stored zstd-compressed
whenever that saves space and are transparently decompressed by [Cache.Get] and [Cache.Peek].
Catalogue text compresses well, so this keeps large caches small.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int                      // Maximum number of entries
	evictList *list.List               // Front is most recently used
	items     map[string]*list.Element // Key to list element
	lock      sync.RWMutex

	compress bool
	zstdEnc  *zstd.Encoder // Used with EncodeAll only
	zstdDec  *zstd.Decoder // Used with DecodeAll only
}

type entry struct {
	key        string
	data       []byte
	compressed bool
}

// New creates a cache holding at most size entries.
//
// It returns [ErrInvalidSize] if size is not positive.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		compress:  compress,
	}

	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores data under key, making it the most recently used entry.
//
// The cache keeps its own copy of data. Add reports whether an older entry
// was evicted to make room.
func (c *Cache) Add(key string, data []byte) bool {
	stored, compressed := c.pack(data)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.data = stored
		ent.compressed = compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, data: stored, compressed: compressed})

	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeElement(c.evictList.Back())
	}

	return evicted
}

// Get returns a copy of the bytes stored under key and marks it as most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(el)

	ent := el.Value.(*entry)
	data, compressed := ent.data, ent.compressed

	c.lock.Unlock()

	return c.unpack(data, compressed)
}

// Peek is like Get but leaves the LRU order unchanged.
func (c *Cache) Peek(key string) ([]byte, bool) {
	c.lock.RLock()

	el, ok := c.items[key]
	if !ok {
		c.lock.RUnlock()

		return nil, false
	}

	ent := el.Value.(*entry)
	data, compressed := ent.data, ent.compressed

	c.lock.RUnlock()

	return c.unpack(data, compressed)
}

// Remove deletes key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)

		return true
	}

	return false
}

// Keys returns all keys from the least to the most recently used.
func (c *Cache) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	keys := make([]string, 0, len(c.items))
	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key)
	}

	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}

// pack returns the representation of data to store. It is called without the
// lock held; zstd.Encoder supports concurrent EncodeAll calls.
func (c *Cache) pack(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return []byte{}, false
	}

	if c.compress {
		if packed := c.zstdEnc.EncodeAll(data, nil); len(packed) < len(data) {
			return packed, true
		}
	}

	copied := make([]byte, len(data))
	copy(copied, data)

	return copied, false
}

// unpack returns a caller-owned copy of a stored value. A value that fails to
// decompress is reported as missing.
func (c *Cache) unpack(data []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		copied := make([]byte, len(data))
		copy(copied, data)

		return copied, true
	}

	if c.zstdDec == nil {
		return nil, false
	}

	decoded, err := c.zstdDec.DecodeAll(data, nil)
	if err != nil {
		return nil, false
	}

	return decoded, true
}
