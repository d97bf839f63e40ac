package convert

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"github.com/PatrickCelentano/mxm-go/log"
	"github.com/PatrickCelentano/mxm-go/midi"
	"github.com/PatrickCelentano/mxm-go/score"
	"github.com/PatrickCelentano/mxm-go/timeline"
)

/* exported note-on velocity; the score model carries no dynamics */
const writeVelocity = 60

/* Writer drives the export pipeline: walking the score's meter changes
 * builds the time→tick breakpoint schedule (each meter fixes the measure
 * size for the segment after it), and every later position resolves against
 * that schedule by the same interpolation as the import direction. */
type Writer struct {
	resolution int
	points     *timeline.Map[float64, int64]
	errs       []error
}

func MkWriter(resolution int) *Writer {
	return &Writer{
		resolution: resolution,
		points:     timeline.MkMap[float64, int64](cmp.Compare[float64]),
	}
}

/* WriteScore schedules the whole score onto the sink: a control track with
 * meter and tempo changes, then one track per part. Out-of-range positions
 * are reported per event and skipped. */
func WriteScore(sc *score.Score, snk midi.Sink) error {
	w := MkWriter(snk.Resolution())
	control := midi.Track{}
	w.scheduleMeters(sc, &control)
	w.scheduleTempos(sc, &control)
	if err := snk.AddTrack(control); err != nil {
		return err
	}
	for _, part := range sc.Parts() {
		track := midi.Track{{Tick: 0, Msg: midi.ProgramChange(part.Instrument)}}
		for _, n := range part.Notes() {
			on, ok1 := w.tickFor(n.Start)
			off, ok2 := w.tickFor(n.End)
			if !ok1 || !ok2 {
				continue
			}
			track = append(track,
				midi.Event{Tick: on, Msg: midi.NoteOn(n.Pitch, writeVelocity)},
				midi.Event{Tick: off, Msg: midi.NoteOff(n.Pitch)})
		}
		if err := snk.AddTrack(track); err != nil {
			return err
		}
	}
	return errors.Join(w.errs...)
}

func (w *Writer) scheduleMeters(sc *score.Score, control *midi.Track) {
	w.points.Put(0, 0)
	meters := sc.Meters()
	if len(meters) == 0 {
		log.TIME.Println("score has no time signature; writing 4/4")
		meters = []score.MeterChange{{Measure: 0, TimeSig: score.DefaultTimeSig}}
	} else if meters[0].Measure != 0 {
		/* earliest meter governs from the top */
		meters = append([]score.MeterChange{{Measure: 0, TimeSig: meters[0].TimeSig}}, meters...)
	}
	lastMeasure := 0
	var lastTick, lastSize int64
	for _, mc := range meters {
		tick := lastTick + int64(mc.Measure-lastMeasure)*lastSize
		w.points.Put(float64(mc.Measure), tick)
		*control = append(*control, midi.Event{Tick: tick, Msg: midi.MeterChange(mc.TimeSig.Num, mc.TimeSig.Den)})
		lastSize = mc.TimeSig.MeasureTicks(w.resolution)
		lastMeasure = mc.Measure
		lastTick = tick
	}
	/* breakpoint far past the last change keeps trailing lookups defined */
	w.points.Put(float64(lastMeasure+10000), lastTick+lastSize*10000)
}

func (w *Writer) scheduleTempos(sc *score.Score, control *midi.Track) {
	for _, tc := range sc.Tempos() {
		tick, ok := w.tickFor(tc.At)
		if !ok {
			continue
		}
		*control = append(*control, midi.Event{Tick: tick, Msg: midi.TempoChange(tc.Tempo.Micros())})
	}
}

func (w *Writer) tickFor(at score.Count) (int64, bool) {
	tick, err := timeline.Interpolate(w.points, at.Float64())
	if err != nil {
		w.errs = append(w.errs, fmt.Errorf("position %v: %w", at, err))
		return 0, false
	}
	return int64(math.Round(tick)), true
}
