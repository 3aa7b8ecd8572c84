package element

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis-backed element service.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Redis keeps the configuration as one JSON value so that the customer and
// admin instances share live settings; updates are broadcast over pub/sub.
type Redis struct {
	client *redis.Client
	prefix string
	log    *slog.Logger

	mu       sync.RWMutex
	cfg      Config
	onChange func(Config)
	cancel   context.CancelFunc
}

// NewRedis creates a Redis element service. Init must be called before use.
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

func (r *Redis) configKey() string { return r.prefix + ":config" }
func (r *Redis) channel() string   { return r.prefix + ":config-changed" }

func (r *Redis) Init(ctx context.Context, opts Options) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	cfg := opts.Defaults
	data, err := r.client.Get(ctx, r.configKey()).Bytes()
	switch {
	case err == redis.Nil:
		// first boot: persist the defaults
		if err := r.save(ctx, cfg); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("load config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse stored config: %w", err)
		}
	}

	r.mu.Lock()
	r.cfg = cfg
	r.onChange = opts.OnConfigChange
	r.mu.Unlock()

	if opts.OnConfigChange != nil {
		opts.OnConfigChange(cfg)
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
			data, err := r.client.Get(ctx, r.configKey()).Bytes()
			if err != nil {
				r.log.Error("failed to reload config after change", "error", err)
				continue
			}
			var cfg Config
			if err := json.Unmarshal(data, &cfg); err != nil {
				r.log.Error("failed to parse reloaded config", "error", err)
				continue
			}

			r.mu.Lock()
			r.cfg = cfg
			notify := r.onChange
			r.mu.Unlock()

			if notify != nil {
				notify(cfg)
			}
		}
	}
}

func (r *Redis) SetConfig(ctx context.Context, patch Patch) error {
	r.mu.RLock()
	cfg := r.cfg.Apply(patch)
	r.mu.RUnlock()

	// Persist before adopting the new value so a failed write leaves this
	// instance serving the same config as the shared store.
	if err := r.save(ctx, cfg); err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel(), "changed").Err(); err != nil {
		return fmt.Errorf("publish config change: %w", err)
	}

	r.mu.Lock()
	r.cfg = cfg
	notify := r.onChange
	r.mu.Unlock()

	if notify != nil {
		notify(cfg)
	}
	return nil
}

func (r *Redis) save(ctx context.Context, cfg Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := r.client.Set(ctx, r.configKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func (r *Redis) Config() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Close stops the subscriber and releases the client.
func (r *Redis) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	return r.client.Close()
}
