package tileengine

import "errors"

// ErrTooManyCharacters describes a weighted merge pass that cannot bring
// the master count down to a hardware character budget because every
// remaining candidate has been exhausted. Neither this package nor
// bgpipeline returns it: WeightedMerge reports the remaining master count
// instead.
var ErrTooManyCharacters = errors.New("tileengine: tile set cannot be reduced to the requested character budget")
