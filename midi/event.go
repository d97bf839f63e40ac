package midi

import (
	"fmt"
)

/* The event protocol boundary. The conversion core never touches wire bytes;
 * it consumes a Source and feeds a Sink, both working in whole decoded
 * messages stamped with absolute ticks. */

type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
	KindProgramChange
	KindTempoChange
	KindMeterChange
	KindText
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNoteOn:
		return "note-on"
	case KindNoteOff:
		return "note-off"
	case KindProgramChange:
		return "program-change"
	case KindTempoChange:
		return "tempo-change"
	case KindMeterChange:
		return "meter-change"
	case KindText:
		return "text"
	}
	return "other"
}

/* Message is a tagged variant; only the fields relevant to Kind are set. */
type Message struct {
	Kind Kind

	Pitch    uint8 /* note-on, note-off */
	Velocity uint8 /* note-on */

	Program int /* program-change */

	MicrosPerQuarter int /* tempo-change */

	MeterNum, MeterDen int /* meter-change; MeterDen already a denominator, not its log2 */

	Text []byte /* text */
}

func NoteOn(pitch, velocity uint8) Message {
	return Message{Kind: KindNoteOn, Pitch: pitch, Velocity: velocity}
}

func NoteOff(pitch uint8) Message {
	return Message{Kind: KindNoteOff, Pitch: pitch}
}

func ProgramChange(program int) Message {
	return Message{Kind: KindProgramChange, Program: program}
}

func TempoChange(microsPerQuarter int) Message {
	return Message{Kind: KindTempoChange, MicrosPerQuarter: microsPerQuarter}
}

func MeterChange(num, den int) Message {
	return Message{Kind: KindMeterChange, MeterNum: num, MeterDen: den}
}

func Text(b []byte) Message {
	return Message{Kind: KindText, Text: b}
}

func (m Message) String() string {
	switch m.Kind {
	case KindNoteOn:
		return fmt.Sprintf("note-on %s vel=%d", PitchName(m.Pitch), m.Velocity)
	case KindNoteOff:
		return fmt.Sprintf("note-off %s", PitchName(m.Pitch))
	case KindProgramChange:
		return fmt.Sprintf("program-change %s", InstName(m.Program))
	case KindTempoChange:
		return fmt.Sprintf("tempo-change %dµs/quarter", m.MicrosPerQuarter)
	case KindMeterChange:
		return fmt.Sprintf("meter-change %d/%d", m.MeterNum, m.MeterDen)
	case KindText:
		return fmt.Sprintf("text %q", m.Text)
	}
	return "other"
}

/* Event is a Message at an absolute tick. */
type Event struct {
	Tick int64
	Msg  Message
}

type Track []Event

/* Source enumerates an already-decoded piece: per-track tick-ordered events,
 * the tick resolution (pulses per quarter note) and the total tick length. */
type Source interface {
	Resolution() int
	FinalTick() int64
	Tracks() []Track
}

/* Sink accepts tick-stamped tracks for serialization at a fixed resolution. */
type Sink interface {
	Resolution() int
	AddTrack(Track) error
}
