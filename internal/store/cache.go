// Package store persists fetched movie payloads so previously viewed
// details and trailers stay readable when the network is down. It is a
// best-effort cache: callers log failures and move on.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/appydinos/moviebrowser/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketDetails = []byte("details")
	bucketVideos  = []byte("videos")
)

// ResponseCache caches movie detail and video payloads in BoltDB, keyed
// by movie id, with an in-memory layer promoted on access.
type ResponseCache struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewResponseCache opens (or creates) the cache under dir. An empty dir
// selects memory-only mode with no persistence.
func NewResponseCache(dir string) (*ResponseCache, error) {
	if dir == "" {
		return &ResponseCache{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "responses.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDetails, bucketVideos} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ResponseCache{db: db, cache: make(map[string][]byte)}, nil
}

func (c *ResponseCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (c *ResponseCache) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	c.mu.RLock()
	if data, ok := c.cache[cacheKey]; ok {
		c.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	c.mu.RUnlock()

	if c.db == nil {
		return false
	}

	var data []byte
	c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	c.mu.Lock()
	c.cache[cacheKey] = data
	c.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (c *ResponseCache) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	c.mu.Lock()
	c.cache[cacheKey] = data
	c.mu.Unlock()

	if c.db == nil {
		return nil // Memory-only mode
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Movie details ===

func (c *ResponseCache) GetMovie(movieID int) (*domain.Movie, bool) {
	var movie domain.Movie
	if !c.get(bucketDetails, strconv.Itoa(movieID), &movie) {
		return nil, false
	}
	return &movie, true
}

func (c *ResponseCache) PutMovie(movie domain.Movie) error {
	return c.set(bucketDetails, strconv.Itoa(movie.ID), movie)
}

// === Videos ===

func (c *ResponseCache) GetVideos(movieID int) ([]domain.Video, bool) {
	var videos []domain.Video
	if !c.get(bucketVideos, strconv.Itoa(movieID), &videos) {
		return nil, false
	}
	return videos, true
}

func (c *ResponseCache) PutVideos(movieID int, videos []domain.Video) error {
	return c.set(bucketVideos, strconv.Itoa(movieID), videos)
}

// InvalidateAll wipes the memory layer and all persisted entries.
func (c *ResponseCache) InvalidateAll() {
	c.mu.Lock()
	c.cache = make(map[string][]byte)
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDetails, bucketVideos} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			cur := b.Cursor()
			for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
