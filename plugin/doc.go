// Package plugin wraps the delay and reverb engines in a host-facing
// effect model: named parameters, a prepare step, block processing and
// optional state persistence.
//
// A host builds effects through a Registry, calls Prepare once the stream
// settings are known, then calls ProcessBlock from a single audio goroutine
// while any number of other goroutines move parameters.
package plugin
