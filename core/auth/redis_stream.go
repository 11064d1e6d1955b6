package auth

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	entity "storefront.GO/model/entity"
)

// RedisStream adapts a Redis pub/sub channel to IdentityStream. The auth
// provider publishes a JSON identity object on sign-in and an empty payload
// on sign-out.
type RedisStream struct {
	Client  *redis.Client
	Channel string
}

func NewRedisStream(client *redis.Client, channel string) *RedisStream {
	return &RedisStream{Client: client, Channel: channel}
}

// Subscribe implements IdentityStream.
func (r *RedisStream) Subscribe(fn func(*entity.Identity)) func() {
	sub := r.Client.Subscribe(context.Background(), r.Channel)
	done := make(chan struct{})

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload == "" {
					fn(nil)
					continue
				}
				var id entity.Identity
				if err := json.Unmarshal([]byte(msg.Payload), &id); err != nil {
					log.Printf("auth: identity payload decode failed: %v", err)
					continue
				}
				fn(&id)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
}
