package convert

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/PatrickCelentano/mxm-go/log"
	"github.com/PatrickCelentano/mxm-go/midi"
	"github.com/PatrickCelentano/mxm-go/score"
	"github.com/PatrickCelentano/mxm-go/timeline"
)

/* Reader drives the import pipeline for one Source: classify events by tick,
 * build the tick→time breakpoint schedule, snap everything to Counts, then
 * pair notes into parts. Each stage consumes its predecessor's tables, so a
 * run holds at most two keyings of the piece at once. A Reader is single-use;
 * construct a fresh one per run. */
type Reader struct {
	src        midi.Source
	resolution int

	/* tick-keyed, filled by classify */
	meterTicks *timeline.Map[int64, score.TimeSig]
	tempoTicks *timeline.Map[int64, score.Tempo]
	noteOns    []*timeline.Map[int64, []uint8]
	noteOffs   []map[uint8]*timeline.Map[int64, struct{}]
	instTicks  []*timeline.Map[int64, int]

	errs []error
}

func MkReader(src midi.Source) *Reader {
	ntracks := len(src.Tracks())
	r := &Reader{
		src:        src,
		resolution: src.Resolution(),
		meterTicks: timeline.MkMap[int64, score.TimeSig](cmp.Compare[int64]),
		tempoTicks: timeline.MkMap[int64, score.Tempo](cmp.Compare[int64]),
	}
	for i := 0; i < ntracks; i++ {
		r.noteOns = append(r.noteOns, timeline.MkMap[int64, []uint8](cmp.Compare[int64]))
		r.noteOffs = append(r.noteOffs, make(map[uint8]*timeline.Map[int64, struct{}]))
		r.instTicks = append(r.instTicks, timeline.MkMap[int64, int](cmp.Compare[int64]))
	}
	return r
}

/* ReadScore converts everything the source enumerates into a Score. The
 * returned error joins all per-event problems (unterminated notes, failed
 * quantizations, out-of-range lookups); the score is still usable alongside
 * a non-nil error. */
func ReadScore(src midi.Source) (*score.Score, error) {
	return MkReader(src).Run()
}

func (r *Reader) Run() (*score.Score, error) {
	log.MIDI.Println("classifying events...")
	r.classify()
	log.TIME.Println("building timeline...")
	tl := timeline.Build(r.resolution, r.src.FinalTick(), r.meterTicks, r.tempoTicks)
	log.TIME.Println("converting to counts...")
	sc := score.MkScore()
	r.convertChanges(tl, sc)
	ons, offs, insts := r.convertTracks(tl)
	log.PART.Println("making parts...")
	r.makeParts(sc, ons, offs, insts)
	return sc, errors.Join(r.errs...)
}

func (r *Reader) classify() {
	for ti, track := range r.src.Tracks() {
		for _, ev := range track {
			r.classifyEvent(ti, ev)
		}
	}
}

func (r *Reader) classifyEvent(ti int, ev midi.Event) {
	switch ev.Msg.Kind {
	case midi.KindNoteOn:
		if ev.Msg.Velocity == 0 {
			/* note-off in disguise */
			r.noteOff(ti, ev.Msg.Pitch, ev.Tick)
			return
		}
		pitches, _ := r.noteOns[ti].Get(ev.Tick)
		r.noteOns[ti].Put(ev.Tick, append(pitches, ev.Msg.Pitch))
	case midi.KindNoteOff:
		r.noteOff(ti, ev.Msg.Pitch, ev.Tick)
	case midi.KindProgramChange:
		r.instTicks[ti].Put(ev.Tick, ev.Msg.Program)
	case midi.KindTempoChange:
		tempo, err := score.TempoFromMicros(ev.Msg.MicrosPerQuarter)
		if err != nil {
			log.MIDI.Printf("bad tempo at tick %d: %v", ev.Tick, err)
			return
		}
		r.tempoTicks.Put(ev.Tick, tempo)
	case midi.KindMeterChange:
		meter, err := score.MkTimeSig(ev.Msg.MeterNum, ev.Msg.MeterDen)
		if err != nil {
			log.MIDI.Printf("improper time signature at tick %d (%v); reverting to 4/4", ev.Tick, err)
			meter = score.DefaultTimeSig
		}
		r.meterTicks.Put(ev.Tick, meter)
	case midi.KindText:
		log.MIDI.Printf("text: %q", ev.Msg.Text)
	case midi.KindOther:
		log.MIDI.Printf("unrecognized message at tick %d, skipped", ev.Tick)
	}
}

func (r *Reader) noteOff(ti int, pitch uint8, tick int64) {
	offs := r.noteOffs[ti][pitch]
	if offs == nil {
		offs = timeline.MkMap[int64, struct{}](cmp.Compare[int64])
		r.noteOffs[ti][pitch] = offs
	}
	offs.Put(tick, struct{}{})
}

/* position quantizes one tick; failures are recorded and the event skipped */
func (r *Reader) position(tl *timeline.Timeline, tick int64) (score.Count, bool) {
	time, err := tl.TimeAt(tick)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("tick %d: %w", tick, err))
		return score.Count{}, false
	}
	c, err := timeline.ClosestCount(time)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("tick %d: %w", tick, err))
		return score.Count{}, false
	}
	return c, true
}

/* convertChanges re-keys the run-wide meter and tempo tables into the score.
 * Build has already pinned the effective initial entries, so the earliest
 * value (or the default) lands at position zero. */
func (r *Reader) convertChanges(tl *timeline.Timeline, sc *score.Score) {
	r.meterTicks.Each(func(tick int64, meter score.TimeSig) {
		if c, ok := r.position(tl, tick); ok {
			sc.AddTimeSig(c.Measure(), meter)
		}
	})
	r.tempoTicks.Each(func(tick int64, tempo score.Tempo) {
		if c, ok := r.position(tl, tick); ok {
			sc.AddTempoChange(c, tempo)
		}
	})
	r.meterTicks.Clear()
	r.tempoTicks.Clear()
}

/* convertTracks re-keys each track's tick tables into Count tables and
 * releases the originals. */
func (r *Reader) convertTracks(tl *timeline.Timeline) (
	ons []*timeline.Map[score.Count, []uint8],
	offs []map[uint8]*timeline.Map[score.Count, struct{}],
	insts []*timeline.Map[score.Count, int],
) {
	for ti := range r.noteOns {
		onsC := timeline.MkMap[score.Count, []uint8](score.Count.Cmp)
		r.noteOns[ti].Each(func(tick int64, pitches []uint8) {
			if c, ok := r.position(tl, tick); ok {
				prev, _ := onsC.Get(c)
				onsC.Put(c, append(prev, pitches...))
			}
		})
		offsC := make(map[uint8]*timeline.Map[score.Count, struct{}])
		for pitch, ticks := range r.noteOffs[ti] {
			byCount := timeline.MkMap[score.Count, struct{}](score.Count.Cmp)
			ticks.Each(func(tick int64, _ struct{}) {
				if c, ok := r.position(tl, tick); ok {
					byCount.Put(c, struct{}{})
				}
			})
			offsC[pitch] = byCount
		}
		instC := timeline.MkMap[score.Count, int](score.Count.Cmp)
		r.instTicks[ti].Each(func(tick int64, program int) {
			if c, ok := r.position(tl, tick); ok {
				instC.Put(c, program)
			}
		})
		ons = append(ons, onsC)
		offs = append(offs, offsC)
		insts = append(insts, instC)
	}
	r.noteOns, r.noteOffs, r.instTicks = nil, nil, nil
	return ons, offs, insts
}

/* makeParts pairs each note-on with the nearest note-off of the same pitch
 * at or after it. A track yields a part only if it saw both a note-on and an
 * instrument change; the earliest instrument wins (mid-part instrument
 * changes are not represented). */
func (r *Reader) makeParts(sc *score.Score,
	ons []*timeline.Map[score.Count, []uint8],
	offs []map[uint8]*timeline.Map[score.Count, struct{}],
	insts []*timeline.Map[score.Count, int],
) {
	for ti := range ons {
		if ons[ti].Len() == 0 || insts[ti].Len() == 0 {
			continue
		}
		_, program, _ := insts[ti].First()
		part := score.MkPart(program)
		ons[ti].Each(func(start score.Count, pitches []uint8) {
			for _, pitch := range pitches {
				var end score.Count
				var ok bool
				if byCount := offs[ti][pitch]; byCount != nil {
					end, _, ok = byCount.Ceiling(start)
				}
				if !ok {
					r.errs = append(r.errs, UnterminatedNoteError{ti, pitch, start})
					continue
				}
				part.Add(score.Note{Pitch: pitch, Start: start, End: end})
			}
		})
		sc.AddPart(part)
		log.PART.Printf("track %d: %s, %d notes", ti, midi.InstName(part.Instrument), len(part.Notes()))
	}
}
