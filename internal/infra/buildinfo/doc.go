// Package buildinfo exposes build-time version information.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/roar-go/internal/infra/buildinfo.Version=v0.3.0"
//
// Values left unset fall back to the module build info embedded by the Go
// toolchain.
package buildinfo
