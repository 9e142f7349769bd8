// Package lock serializa operaciones exclusivas (la reconstrucción del inventario) entre procesos
// vía Redis, o dentro del proceso cuando no hay Redis configurado.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// DefaultTTL vencimiento del candado en Redis cuando no se configura otro.
const DefaultTTL = 30 * time.Second

// RedisLocker candado distribuido con bsm/redislock. Mientras está tomado se renueva cada ttl/2.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker construye el candado sobre un cliente go-redis.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (func(ctx context.Context) error, error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, &domain.Error{Kind: domain.ErrConflict, Message: fmt.Sprintf("candado %s ocupado", key)}
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(lk, stop, done)

	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() {
			close(stop)
			<-done
		})
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// keepAlive renueva el candado hasta que se cierre stop o una renovación falle.
func (l *RedisLocker) keepAlive(lk *redislock.Lock, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/2)
			err := lk.Refresh(ctx, l.ttl, nil)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// LocalLocker candado en proceso para despliegues de una sola instancia.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLocalLocker construye un candado en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]bool)}
}

func (l *LocalLocker) Obtain(_ context.Context, key string) (func(ctx context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, &domain.Error{Kind: domain.ErrConflict, Message: fmt.Sprintf("candado %s ocupado", key)}
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}
