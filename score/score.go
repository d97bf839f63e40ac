package score

import (
	"sort"
)

type MeterChange struct {
	Measure int
	TimeSig TimeSig
}

type TempoChange struct {
	At    Count
	Tempo Tempo
}

/* Score is the symbolic container: ordered meter changes keyed by measure,
 * ordered tempo changes keyed by Count, and one Part per instrument track.
 * The earliest meter/tempo entry acts as the score default. */
type Score struct {
	meters []MeterChange
	tempos []TempoChange
	parts  []*Part
}

func MkScore() *Score {
	return &Score{}
}

/* AddTimeSig records a meter change at the given measure, replacing any
 * change already recorded there. */
func (s *Score) AddTimeSig(measure int, ts TimeSig) {
	i := sort.Search(len(s.meters), func(i int) bool {
		return s.meters[i].Measure >= measure
	})
	if i < len(s.meters) && s.meters[i].Measure == measure {
		s.meters[i].TimeSig = ts
		return
	}
	s.meters = append(s.meters, MeterChange{})
	copy(s.meters[i+1:], s.meters[i:])
	s.meters[i] = MeterChange{measure, ts}
}

func (s *Score) AddTempoChange(at Count, t Tempo) {
	i := sort.Search(len(s.tempos), func(i int) bool {
		return s.tempos[i].At.Cmp(at) >= 0
	})
	if i < len(s.tempos) && s.tempos[i].At.Eq(at) {
		s.tempos[i].Tempo = t
		return
	}
	s.tempos = append(s.tempos, TempoChange{})
	copy(s.tempos[i+1:], s.tempos[i:])
	s.tempos[i] = TempoChange{at, t}
}

func (s *Score) AddPart(p *Part) {
	s.parts = append(s.parts, p)
}

func (s *Score) Meters() []MeterChange {
	return s.meters
}

func (s *Score) Tempos() []TempoChange {
	return s.tempos
}

func (s *Score) Parts() []*Part {
	return s.parts
}

/* TimeSigAt returns the meter in effect at the given measure: the latest
 * change at or before it, or the earliest change for measures preceding all
 * changes, or 4/4 for an empty score. */
func (s *Score) TimeSigAt(measure int) TimeSig {
	if len(s.meters) == 0 {
		return DefaultTimeSig
	}
	i := sort.Search(len(s.meters), func(i int) bool {
		return s.meters[i].Measure > measure
	})
	if i == 0 {
		return s.meters[0].TimeSig
	}
	return s.meters[i-1].TimeSig
}

func (s *Score) TempoAt(at Count) Tempo {
	if len(s.tempos) == 0 {
		return DefaultTempo
	}
	i := sort.Search(len(s.tempos), func(i int) bool {
		return s.tempos[i].At.Cmp(at) > 0
	})
	if i == 0 {
		return s.tempos[0].Tempo
	}
	return s.tempos[i-1].Tempo
}

func (s *Score) IsEmpty() bool {
	return len(s.meters) == 0 && len(s.tempos) == 0 && len(s.parts) == 0
}
