package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// remoteClient is injected by config.InitRedis; nil means in-process only.
var remoteClient *redis.Client

// SetRemoteClient wires the Redis client used by the remote cache tier.
func SetRemoteClient(client *redis.Client) {
	remoteClient = client
}

// RemoteClient exposes the underlying client for callers that need it.
func RemoteClient() *redis.Client {
	return remoteClient
}

func remoteCtx() context.Context {
	return context.Background()
}

// RemoteGetJSON reads a JSON value from Redis into dest. Returns false when
// Redis is not configured, the key is missing, or the payload does not decode.
func RemoteGetJSON(key string, dest interface{}) bool {
	if remoteClient == nil {
		return false
	}
	data, err := remoteClient.Get(remoteCtx(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// RemoteSetJSON writes a JSON value to Redis with a TTL. No-op without Redis.
func RemoteSetJSON(key string, value interface{}, ttl time.Duration) {
	if remoteClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	remoteClient.Set(remoteCtx(), key, data, ttl)
}

// RemoteDelete removes keys from Redis. No-op without Redis.
func RemoteDelete(keys ...string) {
	if remoteClient == nil || len(keys) == 0 {
		return
	}
	remoteClient.Del(remoteCtx(), keys...)
}
