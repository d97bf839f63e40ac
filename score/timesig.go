package score

import (
	"fmt"

	"github.com/pkg/errors"
)

/* TimeSig is a meter: numerator over a power-of-two denominator. Validation
 * happens here at the boundary; code consuming a TimeSig may assume it is
 * well-formed. */
type TimeSig struct {
	Num, Den int
}

var DefaultTimeSig = TimeSig{4, 4}

func MkTimeSig(num, den int) (TimeSig, error) {
	if num <= 0 {
		return TimeSig{}, errors.Errorf("time signature numerator must be positive, got %d", num)
	}
	if den <= 0 || den&(den-1) != 0 {
		return TimeSig{}, errors.Errorf("time signature denominator must be a positive power of two, got %d", den)
	}
	return TimeSig{num, den}, nil
}

/* MeasureTicks returns the length of one measure under this meter, in ticks
 * at the given resolution (pulses per quarter note). */
func (ts TimeSig) MeasureTicks(resolution int) int64 {
	return int64(resolution) * 4 * int64(ts.Num) / int64(ts.Den)
}

func (ts TimeSig) String() string {
	return fmt.Sprintf("%d/%d", ts.Num, ts.Den)
}
