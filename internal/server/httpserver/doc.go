// Package httpserver provides the observability HTTP endpoint of roar-go.
//
// It serves, using stdlib net/http:
//
//   - /metrics: Prometheus exposition of internal/telemetry/metric
//   - /health: liveness probe, always "OK"
//
// The RESP data plane does not go through this server.
package httpserver
