package timeline

import (
	"math"

	"github.com/pkg/errors"

	"github.com/PatrickCelentano/mxm-go/score"
)

const (
	/* maximum deviation between a time value and its snapped rational */
	Tolerance = 0.001
	/* largest subdivision of a measure worth distinguishing */
	MaxDenominator = 59
)

var ErrQuantize = errors.New("no rational approximation within tolerance")

/* ClosestCount snaps measure-relative time to the simplest rational position
 * within Tolerance. Denominators are tried smallest first, so the first grid
 * that fits wins; a value no grid up to MaxDenominator can hold is an error,
 * never a silent best guess. */
func ClosestCount(time float64) (score.Count, error) {
	measure := math.Floor(time)
	remainder := time - measure
	for den := int64(1); den <= MaxDenominator; den++ {
		increment := 1 / float64(den)
		snap := increment * math.Round(remainder/increment)
		if math.Abs(remainder-snap) < Tolerance {
			num := int64(math.Round(time * float64(den)))
			return score.MkCount(num, den), nil
		}
	}
	return score.Count{}, errors.Wrapf(ErrQuantize, "time %v", time)
}
