package datasync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/burgerhouse/storefront/internal/models"
)

// RedisOptions configures the Redis-backed data service.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces the hash and pub/sub channel, e.g. "burgerhouse".
	KeyPrefix string
}

// Redis stores records as JSON values in a hash and broadcasts change
// notifications over pub/sub. Every notification triggers a full reload,
// so all connected instances converge on the same snapshot.
type Redis struct {
	client  *redis.Client
	prefix  string
	log     *slog.Logger
	handler Handler
	cancel  context.CancelFunc
}

// NewRedis creates a Redis data service. Init must be called before use.
func NewRedis(opts RedisOptions, log *slog.Logger) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix: opts.KeyPrefix,
		log:    log,
	}
}

func (r *Redis) recordsKey() string { return r.prefix + ":records" }
func (r *Redis) channel() string    { return r.prefix + ":changed" }

func (r *Redis) Init(ctx context.Context, h Handler) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	r.handler = h

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	if h != nil {
		h.OnDataChanged(records)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	pubsub := r.client.Subscribe(subCtx, r.channel())
	go r.listen(subCtx, pubsub)

	return nil
}

func (r *Redis) listen(ctx context.Context, pubsub *redis.PubSub) {
	defer pubsub.Close()
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			records, err := r.load(ctx)
			if err != nil {
				r.log.Error("failed to reload records after change", "error", err)
				continue
			}
			if r.handler != nil {
				r.handler.OnDataChanged(records)
			}
		}
	}
}

func (r *Redis) Create(ctx context.Context, rec models.Record) error {
	created, err := r.client.HSetNX(ctx, r.recordsKey(), rec.ID, []byte(rec.Body)).Result()
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	if !created {
		return ErrDuplicateID
	}
	return r.publish(ctx)
}

func (r *Redis) Update(ctx context.Context, rec models.Record) error {
	exists, err := r.client.HExists(ctx, r.recordsKey(), rec.ID).Result()
	if err != nil {
		return fmt.Errorf("check record: %w", err)
	}
	if !exists {
		return ErrRecordNotFound
	}
	if err := r.client.HSet(ctx, r.recordsKey(), rec.ID, []byte(rec.Body)).Err(); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return r.publish(ctx)
}

func (r *Redis) publish(ctx context.Context) error {
	if err := r.client.Publish(ctx, r.channel(), "changed").Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

func (r *Redis) load(ctx context.Context) ([]models.Record, error) {
	values, err := r.client.HGetAll(ctx, r.recordsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	records := make([]models.Record, 0, len(values))
	for id, body := range values {
		rec, err := models.ParseRecord([]byte(body))
		if err != nil {
			r.log.Warn("skipping malformed record", "id", id, "error", err)
			continue
		}
		records = append(records, rec)
	}
	// Hash iteration order is random; keep pushes deterministic.
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Close stops the subscriber and releases the client.
func (r *Redis) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return r.client.Close()
}
