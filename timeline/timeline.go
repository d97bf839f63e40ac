package timeline

import (
	"cmp"
	"math"

	"github.com/pkg/errors"

	"github.com/PatrickCelentano/mxm-go/log"
	"github.com/PatrickCelentano/mxm-go/score"
)

var ErrOutOfRange = errors.New("lookup outside recorded timeline span")

type number interface {
	~int64 | ~float64
}

/* Interpolate resolves a position against a monotonic breakpoint table:
 * exact on a breakpoint, linear in between, ErrOutOfRange outside the
 * recorded span. Both conversion directions go through here; integer-valued
 * callers round the result rather than truncate. */
func Interpolate[K, V number](m *Map[K, V], at K) (float64, error) {
	fk, fv, fok := m.Floor(at)
	ck, cv, cok := m.Ceiling(at)
	if !fok || !cok {
		return 0, errors.Wrapf(ErrOutOfRange, "at %v", at)
	}
	if m.cmp(fk, ck) == 0 {
		return float64(fv), nil
	}
	rel := (float64(at) - float64(fk)) / (float64(ck) - float64(fk))
	return rel*(float64(cv)-float64(fv)) + float64(fv), nil
}

/* Timeline maps ticks to continuous measure-relative time. The unit of time
 * is one full measure under the meter active at that point, so the scaling
 * slope changes at every meter change and breakpoints are recorded wherever
 * a meter or tempo change lands. */
type Timeline struct {
	resolution int
	points     *Map[int64, float64]
	inverse    *Map[float64, int64]
}

/* Build walks the piece in large jumps, stopping only at meter/tempo change
 * ticks and the final tick. It owns the given change tables: a missing
 * initial entry is filled in (earliest recorded value, or 4/4 and 120bpm
 * with a warning) so the tables double as the piece's effective schedule. */
func Build(resolution int, finalTick int64, meters *Map[int64, score.TimeSig], tempos *Map[int64, score.Tempo]) *Timeline {
	if meters.Len() == 0 {
		log.TIME.Println("no time signature; defaulting to 4/4")
		meters.Put(0, score.DefaultTimeSig)
	} else if _, _, ok := meters.Floor(0); !ok {
		_, first, _ := meters.First()
		meters.Put(0, first)
	}
	if tempos.Len() == 0 {
		log.TIME.Println("no tempo; defaulting to 120bpm")
		tempos.Put(0, score.DefaultTempo)
	} else if _, _, ok := tempos.Floor(0); !ok {
		_, first, _ := tempos.First()
		tempos.Put(0, first)
	}

	tl := &Timeline{
		resolution: resolution,
		points:     MkMap[int64, float64](cmp.Compare[int64]),
		inverse:    MkMap[float64, int64](cmp.Compare[float64]),
	}
	tl.record(0, 0)
	tick, time := int64(0), 0.0
	for tick < finalTick {
		_, meter, _ := meters.Floor(tick)
		perMeasure := float64(meter.MeasureTicks(resolution))

		/* jump to whichever comes first: the end, the next meter change,
		 * or the next tempo change */
		next := finalTick
		if k, _, ok := meters.Ceiling(tick + 1); ok && k < next {
			next = k
		}
		if k, _, ok := tempos.Ceiling(tick + 1); ok && k < next {
			next = k
		}
		time += float64(next-tick) / perMeasure
		tl.record(next, time)
		tick = next
	}
	return tl
}

func (tl *Timeline) record(tick int64, time float64) {
	tl.points.Put(tick, time)
	tl.inverse.Put(time, tick)
}

func (tl *Timeline) Resolution() int {
	return tl.resolution
}

/* TimeAt converts a tick to measure-relative time. */
func (tl *Timeline) TimeAt(tick int64) (float64, error) {
	return Interpolate(tl.points, tick)
}

/* TickAt converts measure-relative time back to a tick. */
func (tl *Timeline) TickAt(time float64) (int64, error) {
	tick, err := Interpolate(tl.inverse, time)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(tick)), nil
}
