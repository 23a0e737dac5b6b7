// Package redis caches directory lookups in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const (
	memberKeyPrefix  = "directory:member:"
	productKeyPrefix = "directory:product:"

	// DefaultTTL applies when a non-positive TTL is configured.
	DefaultTTL = 30 * time.Second
)

type memberEntry struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type productEntry struct {
	Name string `json:"name"`
}

// CachedDirectory is a read-through ports.Directory. Hits are served from Redis for
// ttl; misses and Redis failures fall through to next. Unknown identifiers are not
// cached, so a member registered after a failed lookup is found on the next one.
type CachedDirectory struct {
	next   ports.Directory
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.Directory = (*CachedDirectory)(nil)

func NewCachedDirectory(next ports.Directory, client goredis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedDirectory{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "directory_cache"),
	}
}

func (d *CachedDirectory) Member(ctx context.Context, id kernel.UUID) (ports.MemberRef, error) {
	key := memberKeyPrefix + id.String()

	var entry memberEntry
	if d.load(ctx, key, &entry) {
		return ports.MemberRef{ID: id, Name: entry.Name, Email: entry.Email}, nil
	}

	ref, err := d.next.Member(ctx, id)
	if err != nil {
		return ports.MemberRef{}, err
	}
	d.store(ctx, key, memberEntry{Name: ref.Name, Email: ref.Email})
	return ref, nil
}

func (d *CachedDirectory) Product(ctx context.Context, id kernel.UUID) (ports.ProductRef, error) {
	key := productKeyPrefix + id.String()

	var entry productEntry
	if d.load(ctx, key, &entry) {
		return ports.ProductRef{ID: id, Name: entry.Name}, nil
	}

	ref, err := d.next.Product(ctx, id)
	if err != nil {
		return ports.ProductRef{}, err
	}
	d.store(ctx, key, productEntry{Name: ref.Name})
	return ref, nil
}

// ForgetMember drops a cached member so the next lookup reads the source.
func (d *CachedDirectory) ForgetMember(ctx context.Context, id kernel.UUID) error {
	return d.client.Del(ctx, memberKeyPrefix+id.String()).Err()
}

func (d *CachedDirectory) load(ctx context.Context, key string, target any) bool {
	raw, err := d.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			d.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err = json.Unmarshal(raw, target); err != nil {
		d.logger.Warn("discarding malformed cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (d *CachedDirectory) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		d.logger.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err = d.client.Set(ctx, key, raw, d.ttl).Err(); err != nil {
		d.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
