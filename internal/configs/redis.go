package config

import (
	"fmt"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the redis holding the shared rate-limit counters.
// Counters change on every request, so client-side caching is off.
func NewRedisClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}
