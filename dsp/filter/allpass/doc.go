// Package allpass provides the feedback/feed-forward all-pass diffuser used
// for input and decay diffusion in plate reverbs.
//
// With feedback gain g and feed-forward gain -g the section has the transfer
// function
//
//	H(z) = (z^-D - g) / (1 - g z^-D)
//
// whose magnitude is one at every frequency: transients are smeared in time
// without colouring the spectrum. The delay D is supplied per call so it can
// follow a size control or an LFO, and must stay below the capacity.
package allpass
