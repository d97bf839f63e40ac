package score

import (
	"fmt"
	"math/big"
)

/* Count is a quantized metric position: a whole number of measures plus a
 * fraction of the measure, held as a single rational in lowest terms. The
 * numerator/denominator convention covers the whole position, so 1⅓ measures
 * is 4/3 (measure 1, fraction 1/3). */
type Count struct {
	frac *big.Rat
}

func MkCount(num, den int64) Count {
	return Count{big.NewRat(num, den)}
}

func CountOf(measure int) Count {
	return MkCount(int64(measure), 1)
}

func (c Count) rat() *big.Rat {
	if c.frac == nil {
		return big.NewRat(0, 1)
	}
	return c.frac
}

/* Measure is the whole-measure part of the position (floor). */
func (c Count) Measure() int {
	r := c.rat()
	return int(new(big.Int).Div(r.Num(), r.Denom()).Int64())
}

func (c Count) Numerator() int64 {
	return c.rat().Num().Int64()
}

func (c Count) Denominator() int64 {
	return c.rat().Denom().Int64()
}

func (c Count) Float64() float64 {
	f, _ := c.rat().Float64()
	return f
}

func (c Count) Cmp(o Count) int {
	return c.rat().Cmp(o.rat())
}

func (c Count) Eq(o Count) bool {
	return c.Cmp(o) == 0
}

func (c Count) String() string {
	if c.Denominator() == 1 {
		return fmt.Sprintf("%d", c.Numerator())
	}
	return fmt.Sprintf("%d/%d", c.Numerator(), c.Denominator())
}
