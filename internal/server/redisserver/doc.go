// Package redisserver serves the key-value store over RESP on TCP.
//
// The package is split into:
//
//   - command.go: the Dispatcher, which executes a command name and its
//     arguments against a memory.Store and produces a reply value
//   - server.go: the TCP accept loop and the per-connection read, decode,
//     dispatch, encode and write cycle
//   - limiter.go: an optional per-client-IP token bucket
//
// Connections are single-shot by default: one request, one reply, then the
// server closes the socket. Config.KeepAlive keeps a connection open for
// further requests.
package redisserver
