package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
)

// Cache guarda respostas de disponibilidade por instalação+data.
// Receiver nil é aceito em toda a API: sem Redis configurado, tudo vira
// no-op e o serviço segue direto no banco.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func facilityDayKey(facilityID uint, date string) string {
	return fmt.Sprintf("facility:%d:day:%s", facilityID, date)
}

// GetOrCompute devolve o JSON cacheado da grade do dia ou calcula via fn,
// colapsando chamadas concorrentes da mesma chave (singleflight).
func (c *Cache) GetOrCompute(
	ctx context.Context,
	facilityID uint,
	date string,
	fn func() (any, error),
) ([]byte, error) {

	if c == nil || c.rdb == nil {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	key := facilityDayKey(facilityID, date)

	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return []byte(s), nil
	} else if err != redis.Nil {
		log.Println("cache get error:", err)
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		out, err := fn()
		if err != nil {
			return nil, err
		}

		b, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}

		if err := c.rdb.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
			log.Println("cache set error:", err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// InvalidateFacilityDay derruba a grade cacheada após qualquer escrita
// que mude a ocupação da instalação naquele dia.
func (c *Cache) InvalidateFacilityDay(ctx context.Context, facilityID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, facilityDayKey(facilityID, date)).Err(); err != nil {
		log.Println("cache invalidate error:", err)
	}
}

// InvalidateFacility derruba todos os dias da instalação (mudança de
// horário semanal ou exceção).
func (c *Cache) InvalidateFacility(ctx context.Context, facilityID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("facility:%d:day:*", facilityID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("cache invalidate error:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("cache scan error:", err)
	}
}
