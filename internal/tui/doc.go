// Package tui is the terminal control surface of fxhost. It edits the
// parameter atomics of a running effect and shows the output peak level.
package tui
