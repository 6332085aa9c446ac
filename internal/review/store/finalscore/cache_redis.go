package finalscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"calibra/internal/review/metrics"
	"calibra/internal/review/models"
	id "calibra/pkg/domain"
	"calibra/pkg/platform/tx"
)

const (
	keyPrefix      = "calibra:final_score:"
	indexKeyPrefix = "calibra:final_score_id:"
)

// Store is the persistence contract the cache decorates.
type Store interface {
	FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error)
	FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.FinalScore, error)
	FindByBonusTier(ctx context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error)
	Save(ctx context.Context, score *models.FinalScore) error
	Delete(ctx context.Context, scoreID id.FinalScoreID) error
}

// CachedStore is a read-through cache for single-score lookups, the hot path
// of team aggregation. Writes go to the backing store first and evict once
// the surrounding transaction commits, so a reader cannot refill the entry
// with the pre-commit row.
// Redis failures never fail a request; they are logged and counted as errors.
type CachedStore struct {
	next    Store
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*CachedStore)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedStore) { c.logger = logger }
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *CachedStore) { c.metrics = m }
}

func NewCached(next Store, client *redis.Client, ttl time.Duration, opts ...CacheOption) *CachedStore {
	c := &CachedStore{next: next, client: client, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func scoreCacheKey(userID id.UserID, cycleID id.CycleID) string {
	return keyPrefix + cycleID.String() + ":" + userID.String()
}

func (c *CachedStore) FindByUserAndCycle(ctx context.Context, userID id.UserID, cycleID id.CycleID) (*models.FinalScore, error) {
	key := scoreCacheKey(userID, cycleID)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		score, decodeErr := decodeScore(raw)
		if decodeErr == nil {
			c.observe("hit")
			return score, nil
		}
		c.warn(ctx, "decode cached final score", decodeErr)
		c.observe("error")
	case errors.Is(err, redis.Nil):
		c.observe("miss")
	default:
		c.warn(ctx, "read cached final score", err)
		c.observe("error")
	}

	score, err := c.next.FindByUserAndCycle(ctx, userID, cycleID)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, score)
	return score, nil
}

func (c *CachedStore) FindByCycle(ctx context.Context, cycleID id.CycleID) ([]*models.FinalScore, error) {
	return c.next.FindByCycle(ctx, cycleID)
}

func (c *CachedStore) FindByBonusTier(ctx context.Context, cycleID id.CycleID, tier models.BonusTier) ([]*models.FinalScore, error) {
	return c.next.FindByBonusTier(ctx, cycleID, tier)
}

func (c *CachedStore) Save(ctx context.Context, score *models.FinalScore) error {
	if err := c.next.Save(ctx, score); err != nil {
		return err
	}
	key := scoreCacheKey(score.UserID, score.CycleID)
	tx.AfterCommit(ctx, func(ctx context.Context) {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.warn(ctx, "evict cached final score", err)
		}
	})
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, scoreID id.FinalScoreID) error {
	if err := c.next.Delete(ctx, scoreID); err != nil {
		return err
	}
	tx.AfterCommit(ctx, func(ctx context.Context) { c.evictByID(ctx, scoreID) })
	return nil
}

func (c *CachedStore) evictByID(ctx context.Context, scoreID id.FinalScoreID) {
	indexKey := indexKeyPrefix + scoreID.String()
	key, err := c.client.Get(ctx, indexKey).Result()
	if errors.Is(err, redis.Nil) {
		return
	}
	if err != nil {
		c.warn(ctx, "read final score cache index", err)
		return
	}
	if err := c.client.Del(ctx, key, indexKey).Err(); err != nil {
		c.warn(ctx, "evict cached final score", err)
	}
}

func (c *CachedStore) fill(ctx context.Context, key string, score *models.FinalScore) {
	raw, err := encodeScore(score)
	if err != nil {
		c.warn(ctx, "encode final score for cache", err)
		return
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.Set(ctx, indexKeyPrefix+score.ID.String(), key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.warn(ctx, "write final score cache", err)
	}
}

func (c *CachedStore) observe(result string) {
	if c.metrics != nil {
		c.metrics.IncCacheLookup(result)
	}
}

func (c *CachedStore) warn(ctx context.Context, msg string, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "error", err)
	}
}

// cachedScore is the wire shape of a FinalScore in Redis. The value objects
// keep their fields unexported, so they travel as plain values and are
// re-validated on the way out.
type cachedScore struct {
	ID                  id.FinalScoreID `json:"id"`
	CycleID             id.CycleID      `json:"cycle_id"`
	UserID              id.UserID       `json:"user_id"`
	Pillars             models.Pillars  `json:"pillars"`
	WeightedScore       float64         `json:"weighted_score"`
	FinalLevel          string          `json:"final_level,omitempty"`
	PeerAverages        *models.Pillars `json:"peer_averages,omitempty"`
	PeerFeedbackCount   int             `json:"peer_feedback_count"`
	Locked              bool            `json:"locked"`
	LockedAt            *time.Time      `json:"locked_at,omitempty"`
	FeedbackDelivered   bool            `json:"feedback_delivered"`
	FeedbackDeliveredAt *time.Time      `json:"feedback_delivered_at,omitempty"`
	DeliveredAt         *time.Time      `json:"delivered_at,omitempty"`
	DeliveredBy         *id.UserID      `json:"delivered_by,omitempty"`
	FeedbackNotes       *string         `json:"feedback_notes,omitempty"`
	CalculatedAt        time.Time       `json:"calculated_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func encodeScore(f *models.FinalScore) ([]byte, error) {
	c := cachedScore{
		ID:                  f.ID,
		CycleID:             f.CycleID,
		UserID:              f.UserID,
		Pillars:             f.PillarScores.ToObject(),
		WeightedScore:       f.WeightedScore.Value(),
		FinalLevel:          string(f.FinalLevel),
		PeerFeedbackCount:   f.PeerFeedbackCount,
		Locked:              f.Locked,
		LockedAt:            f.LockedAt,
		FeedbackDelivered:   f.FeedbackDelivered,
		FeedbackDeliveredAt: f.FeedbackDeliveredAt,
		DeliveredAt:         f.DeliveredAt,
		DeliveredBy:         f.DeliveredBy,
		FeedbackNotes:       f.FeedbackNotes,
		CalculatedAt:        f.CalculatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
	if f.PeerAverageScores != nil {
		p := f.PeerAverageScores.ToObject()
		c.PeerAverages = &p
	}
	return json.Marshal(c)
}

func decodeScore(raw []byte) (*models.FinalScore, error) {
	var c cachedScore
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cached final score: %w", err)
	}
	pillars, err := models.NewPillarScores(c.Pillars)
	if err != nil {
		return nil, err
	}
	weighted, err := models.NewWeightedScore(c.WeightedScore)
	if err != nil {
		return nil, err
	}
	f := &models.FinalScore{
		ID:                  c.ID,
		CycleID:             c.CycleID,
		UserID:              c.UserID,
		PillarScores:        pillars,
		WeightedScore:       weighted,
		FinalLevel:          models.EngineerLevel(c.FinalLevel),
		PeerFeedbackCount:   c.PeerFeedbackCount,
		Locked:              c.Locked,
		LockedAt:            c.LockedAt,
		FeedbackDelivered:   c.FeedbackDelivered,
		FeedbackDeliveredAt: c.FeedbackDeliveredAt,
		DeliveredAt:         c.DeliveredAt,
		DeliveredBy:         c.DeliveredBy,
		FeedbackNotes:       c.FeedbackNotes,
		CalculatedAt:        c.CalculatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if c.PeerAverages != nil {
		avg, err := models.NewPillarScores(*c.PeerAverages)
		if err != nil {
			return nil, err
		}
		f.PeerAverageScores = &avg
	}
	return f, nil
}
