// Package confloader loads configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags)
//  2. Environment variables (ROAR_ prefix)
//  3. The YAML configuration file
//  4. Whatever the target struct already holds (defaults)
//
// Watcher reports changes of the configuration file through fsnotify so the
// caller can Reload.
package confloader
