// Package availability кэширует рассчитанные слоты мастера на день в Redis.
// Ключ avail:{tenant}:{staff}:{YYYY-MM-DD}, поле хэша = длительность услуги в минутах.
// Рядом хранится версия ключа: запись из Set принимается, только если версия не менялась с Get.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Cache кэш доступности поверх Redis
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New создает кэш доступности
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key ключ кэша для мастера и даты
func Key(tenantID string, staffID int64, date time.Time) string {
	return fmt.Sprintf("avail:%s:%d:%s", tenantID, staffID, date.Format(domain.DateFormat))
}

// VersionKey счетчик инвалидаций ключа Key
func VersionKey(tenantID string, staffID int64, date time.Time) string {
	return Key(tenantID, staffID, date) + ":ver"
}

// Get возвращает закэшированные начала слотов и версию ключа; found=false при промахе
// Версию нужно прочитать до расчета слотов и передать в Set
func (c *Cache) Get(ctx context.Context, tenantID string, staffID int64, date time.Time, durationMinutes int) ([]time.Time, int64, bool, error) {
	pipe := c.rdb.TxPipeline()
	dataCmd := pipe.HGet(ctx, Key(tenantID, staffID, date), strconv.Itoa(durationMinutes))
	verCmd := pipe.Get(ctx, VersionKey(tenantID, staffID, date))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("%w: Get: %w", ErrCache, err)
	}

	version, err := parseVersion(verCmd)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := dataCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: Get: %w", ErrCache, err)
	}

	starts, err := decode(raw)
	if err != nil {
		return nil, version, false, err
	}
	return starts, version, true, nil
}

// Set сохраняет начала слотов, если с момента Get ключ не инвалидировался
// stored=false, когда версия изменилась и расчет мог устареть
func (c *Cache) Set(ctx context.Context, tenantID string, staffID int64, date time.Time, durationMinutes int, version int64, starts []time.Time) (bool, error) {
	payload, err := encode(starts)
	if err != nil {
		return false, err
	}

	key := Key(tenantID, staffID, date)
	verKey := VersionKey(tenantID, staffID, date)

	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := parseVersion(tx.Get(ctx, verKey))
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.Itoa(durationMinutes), payload)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, verKey)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return false, nil
	case errors.Is(err, ErrDecode):
		return false, err
	case err != nil:
		return false, fmt.Errorf("%w: Set: %w", ErrCache, err)
	}
	return stored, nil
}

// InvalidateDay удаляет все длительности мастера на дату и увеличивает версию
func (c *Cache) InvalidateDay(ctx context.Context, tenantID string, staffID int64, date time.Time) error {
	pipe := c.rdb.TxPipeline()
	c.invalidate(ctx, pipe, tenantID, staffID, date)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: InvalidateDay: %w", ErrCache, err)
	}
	return nil
}

// InvalidateRange удаляет ключи мастера для каждой даты из [from, to], не более domain.MaxTimeOffInvalidationDays
func (c *Cache) InvalidateRange(ctx context.Context, tenantID string, staffID int64, from, to time.Time) error {
	dates := rangeDates(from, to)
	if len(dates) == 0 {
		return nil
	}

	pipe := c.rdb.TxPipeline()
	for _, d := range dates {
		c.invalidate(ctx, pipe, tenantID, staffID, d)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: InvalidateRange: %w", ErrCache, err)
	}
	return nil
}

func (c *Cache) invalidate(ctx context.Context, pipe redis.Pipeliner, tenantID string, staffID int64, date time.Time) {
	verKey := VersionKey(tenantID, staffID, date)
	pipe.Del(ctx, Key(tenantID, staffID, date))
	pipe.Incr(ctx, verKey)
	pipe.Expire(ctx, verKey, versionTTL(c.ttl))
}

// versionTTL версия живет дольше данных, чтобы не обнулиться во время расчета
func versionTTL(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return 2 * time.Minute
	}
	return 2 * ttl
}

func parseVersion(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version: %w", ErrDecode, err)
	}
	return v, nil
}

// RangeKeys ключи для каждой даты из [from, to]
func RangeKeys(tenantID string, staffID int64, from, to time.Time) []string {
	dates := rangeDates(from, to)
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = Key(tenantID, staffID, d)
	}
	return keys
}

func rangeDates(from, to time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for d := from; !d.After(to) && len(dates) < domain.MaxTimeOffInvalidationDays; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func encode(starts []time.Time) (string, error) {
	values := make([]string, len(starts))
	for i, s := range starts {
		values[i] = s.UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(b), nil
}

func decode(raw string) ([]time.Time, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	starts := make([]time.Time, len(values))
	for i, v := range values {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		starts[i] = t
	}
	return starts, nil
}
