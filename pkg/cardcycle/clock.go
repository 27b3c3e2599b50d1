package cardcycle

import "time"

// Clock supplies the current time for cache expiry decisions. The date
// math itself never consults a clock: reference and purchase dates are
// always caller-supplied, so results stay reproducible.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
