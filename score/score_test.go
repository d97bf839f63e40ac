package score

import (
	"testing"
)

func TestTimeSigValidation(t *testing.T) {
	if _, err := MkTimeSig(4, 4); err != nil {
		t.Errorf("4/4 rejected: %v", err)
	}
	if _, err := MkTimeSig(7, 8); err != nil {
		t.Errorf("7/8 rejected: %v", err)
	}
	for _, bad := range []struct{ num, den int }{
		{0, 4}, {-1, 4}, {4, 0}, {4, -4}, {4, 3}, {4, 12},
	} {
		if _, err := MkTimeSig(bad.num, bad.den); err == nil {
			t.Errorf("%d/%d should have been rejected", bad.num, bad.den)
		}
	}
}

func TestMeasureTicks(t *testing.T) {
	cases := []struct {
		ts         TimeSig
		resolution int
		ticks      int64
	}{
		{TimeSig{4, 4}, 480, 1920},
		{TimeSig{3, 8}, 480, 720},
		{TimeSig{6, 8}, 24, 72},
		{TimeSig{3, 4}, 480, 1440},
	}
	for _, c := range cases {
		if got := c.ts.MeasureTicks(c.resolution); got != c.ticks {
			t.Errorf("%v at %d ppqn: %d ticks, expected %d", c.ts, c.resolution, got, c.ticks)
		}
	}
}

func TestTempoMicros(t *testing.T) {
	tempo, err := TempoFromMicros(500000)
	if err != nil {
		t.Fatal(err)
	}
	if tempo.BPM != 120 {
		t.Errorf("500000µs/quarter = %v, expected 120bpm", tempo)
	}
	if tempo.Micros() != 500000 {
		t.Errorf("Micros() = %d, expected 500000", tempo.Micros())
	}
	if _, err := TempoFromMicros(0); err == nil {
		t.Error("zero microseconds per quarter should be rejected")
	}
	if _, err := MkTempo(-3); err == nil {
		t.Error("negative tempo should be rejected")
	}
}

func TestScoreChangeOrder(t *testing.T) {
	s := MkScore()
	s.AddTimeSig(5, TimeSig{3, 8})
	s.AddTimeSig(0, TimeSig{4, 4})
	s.AddTimeSig(5, TimeSig{6, 8}) /* replaces */
	meters := s.Meters()
	if len(meters) != 2 {
		t.Fatalf("%d meter changes, expected 2", len(meters))
	}
	if meters[0].Measure != 0 || meters[1].Measure != 5 {
		t.Errorf("meters out of order: %v", meters)
	}
	if meters[1].TimeSig != (TimeSig{6, 8}) {
		t.Errorf("measure 5 meter = %v, expected 6/8", meters[1].TimeSig)
	}
}

func TestTimeSigAt(t *testing.T) {
	s := MkScore()
	if s.TimeSigAt(3) != DefaultTimeSig {
		t.Error("empty score should report 4/4")
	}
	s.AddTimeSig(2, TimeSig{3, 4})
	s.AddTimeSig(6, TimeSig{7, 8})
	cases := []struct {
		measure int
		ts      TimeSig
	}{
		{0, TimeSig{3, 4}}, /* earliest entry governs before the first change */
		{2, TimeSig{3, 4}},
		{5, TimeSig{3, 4}},
		{6, TimeSig{7, 8}},
		{99, TimeSig{7, 8}},
	}
	for _, c := range cases {
		if got := s.TimeSigAt(c.measure); got != c.ts {
			t.Errorf("TimeSigAt(%d) = %v, expected %v", c.measure, got, c.ts)
		}
	}
}

func TestTempoAt(t *testing.T) {
	s := MkScore()
	if s.TempoAt(CountOf(1)) != DefaultTempo {
		t.Error("empty score should report 120bpm")
	}
	s.AddTempoChange(CountOf(0), Tempo{90})
	s.AddTempoChange(MkCount(5, 2), Tempo{140})
	if got := s.TempoAt(CountOf(2)); got.BPM != 90 {
		t.Errorf("TempoAt(2) = %v, expected 90bpm", got)
	}
	if got := s.TempoAt(CountOf(3)); got.BPM != 140 {
		t.Errorf("TempoAt(3) = %v, expected 140bpm", got)
	}
}

func TestPartAddSorts(t *testing.T) {
	p := MkPart(0)
	p.Add(Note{Pitch: 64, Start: CountOf(2), End: CountOf(3)})
	p.Add(Note{Pitch: 60, Start: CountOf(0), End: CountOf(1)})
	p.Add(Note{Pitch: 57, Start: CountOf(2), End: CountOf(4)})
	notes := p.Notes()
	if len(notes) != 3 {
		t.Fatalf("%d notes, expected 3", len(notes))
	}
	if notes[0].Pitch != 60 || notes[1].Pitch != 57 || notes[2].Pitch != 64 {
		t.Errorf("notes out of order: %v", notes)
	}
}
