// Package ffmpeg builds and executes the ffmpeg invocations behind every
// encode path: raw BGR frame pipes for the Go-side color transforms, and
// declarative filter commands (pad, lavfi filler, xstack, eq) for the
// normalization and mosaic paths.
//
// Command construction is split from execution: builders are pure functions
// returning the full argv (binary first), so they can be tested without an
// ffmpeg on PATH. Execution captures stderr for error reporting; streaming
// execution exposes the encoder's stdin so a producing loop can block on it
// when the encoder falls behind.
package ffmpeg
