// Package health provides liveness and readiness HTTP handlers.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// Checks run concurrently under a shared timeout. Responses are JSON:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
