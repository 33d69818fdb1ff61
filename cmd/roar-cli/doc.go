// Package main provides the entry point for roar-cli, the command-line
// client for roar-server.
package main
