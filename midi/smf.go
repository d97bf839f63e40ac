package midi

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

/* Adapters between the Source/Sink capabilities and gomidi's SMF model,
 * which handles the actual wire format. */

type SMFSource struct {
	resolution int
	finalTick  int64
	tracks     []Track
}

func SourceFromSMF(mid *smf.SMF) (*SMFSource, error) {
	ticks, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Errorf("unsupported SMF time format %v (need metric ticks)", mid.TimeFormat)
	}
	src := &SMFSource{resolution: int(ticks)}
	for _, tr := range mid.Tracks {
		var abs int64
		var out Track
		for _, ev := range tr {
			abs += int64(ev.Delta)
			if msg, ok := decode(ev.Message); ok {
				out = append(out, Event{abs, msg})
			}
			if abs > src.finalTick {
				src.finalTick = abs
			}
		}
		src.tracks = append(src.tracks, out)
	}
	return src, nil
}

func decode(msg smf.Message) (Message, bool) {
	var ch, key, vel, prog uint8
	var num, den, cpt, dsq uint8
	var bpm float64
	var text string
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		return NoteOn(key, vel), true
	case msg.GetNoteOff(&ch, &key, &vel):
		return NoteOff(key), true
	case msg.GetProgramChange(&ch, &prog):
		return ProgramChange(int(prog)), true
	case msg.GetMetaTempo(&bpm):
		if bpm <= 0 {
			return Message{Kind: KindOther}, true
		}
		return TempoChange(int(math.Round(60000000 / bpm))), true
	case msg.GetMetaTimeSig(&num, &den, &cpt, &dsq):
		return MeterChange(int(num), int(den)), true
	case msg.GetMetaText(&text):
		return Text([]byte(text)), true
	case msg.Is(smf.MetaEndOfTrackMsg):
		return Message{}, false
	default:
		return Message{Kind: KindOther}, true
	}
}

func (s *SMFSource) Resolution() int {
	return s.resolution
}

func (s *SMFSource) FinalTick() int64 {
	return s.finalTick
}

func (s *SMFSource) Tracks() []Track {
	return s.tracks
}

type SMFSink struct {
	resolution int
	smf        *smf.SMF
}

func MkSMFSink(resolution int) *SMFSink {
	out := smf.New()
	out.TimeFormat = smf.MetricTicks(resolution)
	return &SMFSink{resolution, out}
}

func (s *SMFSink) Resolution() int {
	return s.resolution
}

func (s *SMFSink) AddTrack(t Track) error {
	sorted := make(Track, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tick < sorted[j].Tick
	})
	var tr smf.Track
	var last int64
	for _, ev := range sorted {
		delta := uint32(ev.Tick - last)
		switch ev.Msg.Kind {
		case KindNoteOn:
			tr.Add(delta, gomidi.NoteOn(0, ev.Msg.Pitch, ev.Msg.Velocity))
		case KindNoteOff:
			tr.Add(delta, gomidi.NoteOff(0, ev.Msg.Pitch))
		case KindProgramChange:
			tr.Add(delta, gomidi.ProgramChange(0, uint8(ev.Msg.Program)))
		case KindTempoChange:
			tr.Add(delta, smf.MetaTempo(60000000/float64(ev.Msg.MicrosPerQuarter)))
		case KindMeterChange:
			tr.Add(delta, smf.MetaMeter(uint8(ev.Msg.MeterNum), uint8(ev.Msg.MeterDen)))
		case KindText:
			tr.Add(delta, smf.MetaText(string(ev.Msg.Text)))
		case KindOther:
			continue /* nothing serializable */
		}
		last = ev.Tick
	}
	tr.Close(0)
	return s.smf.Add(tr)
}

/* SMF returns the accumulated file, ready for WriteFile/WriteTo. */
func (s *SMFSink) SMF() *smf.SMF {
	return s.smf
}
