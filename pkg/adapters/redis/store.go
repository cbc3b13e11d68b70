// Package redis persists verification reports in Redis, for deployments
// where sessions run repeatedly (CI loops, the serve mode) and results must
// outlive the process.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/treeline/pkg/domain"
)

// Store implements ports.ReportStore using Redis. Reports are stored as
// JSON values with an optional TTL, and indexed in a ZSET so List stays
// cheap and lazily prunes expired entries.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for stored reports.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for reports.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "treeline:report:",
		ttl:    0, // no expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the report to Redis.
func (s *Store) Save(ctx context.Context, id string, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(id), data, s.ttl)

	// Index score is the expiration instant; entries without a TTL get a
	// far-future score so pruning never touches them.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: id})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save report to redis: %w", err)
	}
	return nil
}

// Load retrieves a report from Redis.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report from redis: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Delete removes a report and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns stored report IDs, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired reports: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return ids, nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
