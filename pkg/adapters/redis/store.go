package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// neverExpires is the index score for cursors saved without a TTL
// (2100-01-01 in unix milliseconds).
const neverExpires = 4102444800000

// keyspace names the keys a Store touches under its prefix.
type keyspace string

func (k keyspace) cursor(sessionID string) string { return string(k) + sessionID }

// index is a sorted set of session IDs scored by expiry in unix milliseconds.
func (k keyspace) index() string { return string(k) + "index" }

// Store implements ports.CursorStore on Redis. Each cursor is a JSON string
// key; the index lets List skip a SCAN over the keyspace.
type Store struct {
	client backend.UniversalClient
	keys   keyspace
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL expires cursors this long after their last save. Zero keeps them.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix (default "cadence:wizard:").
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.keys = keyspace(prefix)
	}
}

// NewStore wraps an existing client. The caller owns the client and closes it.
func NewStore(client backend.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{client: client, keys: "cadence:wizard:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) expiry(now time.Time) float64 {
	if s.ttl <= 0 {
		return neverExpires
	}
	return float64(now.Add(s.ttl).UnixMilli())
}

// Save writes the cursor and its index entry in one MULTI/EXEC.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.WizardState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cursor %q: %w", sessionID, err)
	}

	score := s.expiry(time.Now())
	_, err = s.client.TxPipelined(ctx, func(tx backend.Pipeliner) error {
		tx.Set(ctx, s.keys.cursor(sessionID), payload, s.ttl)
		tx.ZAdd(ctx, s.keys.index(), backend.Z{Score: score, Member: sessionID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save cursor %q: %w", sessionID, err)
	}
	return nil
}

// Load returns domain.ErrSessionNotFound once the key is gone or expired.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	payload, err := s.client.Get(ctx, s.keys.cursor(sessionID)).Bytes()
	switch {
	case errors.Is(err, backend.Nil):
		return nil, domain.ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("load cursor %q: %w", sessionID, err)
	}

	state := &domain.WizardState{}
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, fmt.Errorf("decode cursor %q: %w", sessionID, err)
	}
	return state, nil
}

// Delete drops the cursor and its index entry. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.client.TxPipelined(ctx, func(tx backend.Pipeliner) error {
		tx.Del(ctx, s.keys.cursor(sessionID))
		tx.ZRem(ctx, s.keys.index(), sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete cursor %q: %w", sessionID, err)
	}
	return nil
}

// List returns the IDs whose expiry is still ahead and drops the rest from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)

	var live *backend.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(tx backend.Pipeliner) error {
		tx.ZRemRangeByScore(ctx, s.keys.index(), "-inf", now)
		live = tx.ZRangeByScore(ctx, s.keys.index(), &backend.ZRangeBy{Min: "(" + now, Max: "+inf"})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cursors: %w", err)
	}
	return live.Val(), nil
}
