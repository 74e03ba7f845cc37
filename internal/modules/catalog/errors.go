package catalog

import "errors"

// ErrActiveRentals blocks bike deletion while pending or confirmed rentals
// reference the bike.
var ErrActiveRentals = errors.New("cannot delete bike with active rentals")
