// Package conv normalises loosely typed protocol values such as JSON-RPC ids.
package conv
