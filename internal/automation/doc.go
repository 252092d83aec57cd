// Package automation runs Lua scripts that move effect parameters over time.
//
// Scripts see these globals:
//
//	set(name, value)  store a parameter, returns the clamped value
//	get(name)         current value of a parameter
//	reset([name])     restore one or all parameters to their defaults
//	params()          array of parameter names in display order
//	sleep(ms)         pause the script; returns early on shutdown
//	log(...)          write a line to the host log
//
// A script runs on its own goroutine and only touches parameter atomics, so
// it never blocks the audio callback.
package automation
