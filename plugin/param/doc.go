// Package param holds the named controls an effect exposes to its host.
//
// Each Param stores a float32 in an atomic word so UI, automation and
// audio goroutines can share it without locks. Writers go through Set,
// which clamps to the parameter's range; the audio goroutine loads each
// value once per block with Get. Parameters are independent: there is no
// consistent multi-parameter snapshot.
package param
