// Package main provides the entry point for roar-server.
//
// roar-server is an in-memory key-value server speaking RESP2 over TCP.
// It keeps scalar values and lists in memory only; nothing survives a
// restart.
package main
