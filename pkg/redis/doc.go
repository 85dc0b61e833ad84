// Package redis opens go-redis clients with retries and exposes
// readiness and shutdown hooks.
//
//	client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//	hooks = append(hooks, redis.Shutdown(client))
package redis
