// Package api exposes the knowledge base over a JSON HTTP API.
//
// Routes:
//
//	POST   /api/v1/resources        ingest content into the knowledge base
//	GET    /api/v1/resources        list stored resources
//	GET    /api/v1/resources/{id}   fetch one resource
//	DELETE /api/v1/resources/{id}   delete a resource and its chunks
//	GET    /api/v1/search?q=...     similarity search over stored chunks
//	GET    /health                  liveness probe
//	GET    /ready                   readiness probe (checks the database)
//
// The middleware stack, outermost first: Recovery, RequestID, Logging,
// RateLimit. Health probes bypass the stack so orchestrator checks are
// never rate limited.
package api
