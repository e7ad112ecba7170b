package redis

import (
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient starts an in-memory server for the test. The client is
// closed before the server when the test ends.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: server.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, server
}

// storedKeys lists every key the server holds under prefix.
func storedKeys(t *testing.T, server *miniredis.Miniredis, prefix string) []string {
	t.Helper()

	var keys []string
	for _, key := range server.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
