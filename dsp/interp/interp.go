package interp

import "golang.org/x/exp/constraints"

// Linear2 interpolates from x0 to x1 at fraction t in [0,1].
func Linear2[F constraints.Float](t, x0, x1 F) F {
	return x0 + t*(x1-x0)
}
