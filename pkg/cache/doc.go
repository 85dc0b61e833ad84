// Package cache provides a generic key-value cache with in-memory and
// Redis backends.
//
// The service uses it to memoise rendered previews: assembly is pure, so
// the rendered HTML for a given input can be reused until it expires.
//
//	c := cache.NewMemory[string](10*time.Minute, time.Minute)
//	key := cache.Key("preview", blocksJSON, []byte(username), []byte(message))
//	html, hit, err := cache.GetOrSet(ctx, c, key, func(ctx context.Context) (string, time.Duration, error) {
//	    r, err := assembler.Assemble(ctx, blocks, vars)
//	    if err != nil {
//	        return "", 0, err
//	    }
//	    return r.HTML, 0, nil
//	})
//
// GetOrSet collapses concurrent misses on the same key into one call.
//
// For multi-instance deployments use NewRedis with a client from pkg/redis:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis[string](client, nil, cache.WithPrefix("mailforge"))
package cache
