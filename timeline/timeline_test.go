package timeline

import (
	"cmp"
	"errors"
	"testing"

	"github.com/PatrickCelentano/mxm-go/score"
)

func mkmeters(pairs ...interface{}) *Map[int64, score.TimeSig] {
	m := MkMap[int64, score.TimeSig](cmp.Compare[int64])
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i].(int64), pairs[i+1].(score.TimeSig))
	}
	return m
}

func mktempos(pairs ...int64) *Map[int64, score.Tempo] {
	m := MkMap[int64, score.Tempo](cmp.Compare[int64])
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i], score.Tempo{BPM: int(pairs[i+1])})
	}
	return m
}

func timeAt(t *testing.T, tl *Timeline, tick int64) float64 {
	time, err := tl.TimeAt(tick)
	if err != nil {
		t.Fatalf("TimeAt(%d): %v", tick, err)
	}
	return time
}

/* resolution 480, constant 4/4, constant tempo: one measure is 1920 ticks */
func TestConstantMeter(t *testing.T) {
	tl := Build(480, 1920, mkmeters(), mktempos())
	if got := timeAt(t, tl, 480); got != 0.25 {
		t.Errorf("TimeAt(480) = %v, expected 0.25", got)
	}
	if got := timeAt(t, tl, 1920); got != 1.0 {
		t.Errorf("TimeAt(1920) = %v, expected 1.0", got)
	}
}

func TestDefaultsPinned(t *testing.T) {
	meters := mkmeters()
	tempos := mktempos()
	Build(480, 960, meters, tempos)
	if _, ts, ok := meters.First(); !ok || ts != score.DefaultTimeSig {
		t.Errorf("expected 4/4 pinned at tick 0, got %v, %v", ts, ok)
	}
	if k, tempo, ok := tempos.First(); !ok || k != 0 || tempo != score.DefaultTempo {
		t.Errorf("expected 120bpm pinned at tick 0, got %v at %d, %v", tempo, k, ok)
	}
}

/* a first change after tick 0 also governs the span before it */
func TestEarliestChangeGovernsFromStart(t *testing.T) {
	meters := mkmeters(int64(960), score.TimeSig{Num: 3, Den: 4})
	tl := Build(480, 2880, meters, mktempos())
	/* 3/4 measures are 1440 ticks; tick 960 must land at 960/1440 */
	if got := timeAt(t, tl, 960); !approx(got, 960.0/1440.0) {
		t.Errorf("TimeAt(960) = %v, expected %v", got, 960.0/1440.0)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

/* meter change mid-piece alters the slope beyond its breakpoint only */
func TestMeterChangeMidPiece(t *testing.T) {
	/* 4/4 as far as measure 5 (tick 9600), then 3/8 (720-tick measures) */
	meters := mkmeters(int64(0), score.TimeSig{Num: 4, Den: 4}, int64(9600), score.TimeSig{Num: 3, Den: 8})
	tl := Build(480, 11040, meters, mktempos())

	if got := timeAt(t, tl, 1920); got != 1.0 {
		t.Errorf("TimeAt(1920) = %v, expected 1.0 (prior meter governs)", got)
	}
	if got := timeAt(t, tl, 9600); got != 5.0 {
		t.Errorf("TimeAt(9600) = %v, expected 5.0", got)
	}
	if got := timeAt(t, tl, 10320); !approx(got, 6.0) {
		t.Errorf("TimeAt(10320) = %v, expected 6.0 (3/8 measures past the change)", got)
	}
	if got := timeAt(t, tl, 11040); !approx(got, 7.0) {
		t.Errorf("TimeAt(11040) = %v, expected 7.0", got)
	}
}

func TestMonotonic(t *testing.T) {
	meters := mkmeters(int64(0), score.TimeSig{Num: 4, Den: 4}, int64(3840), score.TimeSig{Num: 7, Den: 8}, int64(7000), score.TimeSig{Num: 3, Den: 4})
	tempos := mktempos(0, 120, 1000, 90, 5000, 200)
	tl := Build(480, 12000, meters, tempos)
	prev := 0.0
	for tick := int64(0); tick <= 12000; tick += 97 {
		got := timeAt(t, tl, tick)
		if got < prev {
			t.Fatalf("TimeAt(%d) = %v < previous %v", tick, got, prev)
		}
		prev = got
	}
}

/* every breakpoint must convert back to its exact tick */
func TestBreakpointRoundTrip(t *testing.T) {
	meters := mkmeters(int64(0), score.TimeSig{Num: 4, Den: 4}, int64(3840), score.TimeSig{Num: 3, Den: 8}, int64(5000), score.TimeSig{Num: 6, Den: 8})
	tempos := mktempos(0, 120, 960, 80, 4000, 140)
	tl := Build(480, 9000, meters, tempos)
	tl.points.Each(func(tick int64, time float64) {
		back, err := tl.TickAt(time)
		if err != nil {
			t.Fatalf("TickAt(%v): %v", time, err)
		}
		if back != tick {
			t.Errorf("TickAt(TimeAt(%d)) = %d", tick, back)
		}
	})
}

func TestLookupOutOfRange(t *testing.T) {
	tl := Build(480, 1920, mkmeters(), mktempos())
	if _, err := tl.TimeAt(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TimeAt(-1) error = %v, expected ErrOutOfRange", err)
	}
	if _, err := tl.TimeAt(5000); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TimeAt(5000) error = %v, expected ErrOutOfRange", err)
	}
	if _, err := tl.TickAt(99.0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TickAt(99) error = %v, expected ErrOutOfRange", err)
	}
}
