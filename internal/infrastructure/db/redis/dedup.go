package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultDedupTTL = 10 * time.Minute

// ContactDedup remembers relayed contact submissions by fingerprint.
// Key format: contact:dedup:<fingerprint>
type ContactDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContactDedup wraps client; ttl <= 0 selects DefaultDedupTTL.
func NewContactDedup(client *redis.Client, ttl time.Duration) *ContactDedup {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &ContactDedup{client: client, ttl: ttl}
}

// IsDuplicate reports whether this submission was relayed within the window.
func (d *ContactDedup) IsDuplicate(ctx context.Context, fingerprint string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(fingerprint)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission; it expires after the dedup window.
func (d *ContactDedup) Mark(ctx context.Context, fingerprint string) error {
	return d.client.Set(ctx, d.key(fingerprint), "1", d.ttl).Err()
}

func (d *ContactDedup) key(fingerprint string) string {
	return fmt.Sprintf("contact:dedup:%s", fingerprint)
}
