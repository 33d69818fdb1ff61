// Package metric provides Prometheus metrics for roar-go.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, command/connection instruments, HTTP handler
//   - collector.go: custom collector reporting key space sizes
//
// Metrics include:
//
//   - roar_commands_total{command,result}
//   - roar_command_duration_seconds{command}
//   - roar_connections_total, roar_connections_active
//   - roar_protocol_errors_total, roar_rate_limited_total
//   - roar_keys{type}
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
