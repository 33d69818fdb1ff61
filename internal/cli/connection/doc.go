// Package connection provides the RESP client used by roar-cli.
//
// The server closes a connection after one reply unless it runs with
// keepalive, so Client dials a fresh connection for every command.
package connection
