package score

import (
	"fmt"

	"github.com/pkg/errors"
)

const microsPerMinute = 60000000

/* Tempo in beats (quarter notes) per minute. BPM must be positive. */
type Tempo struct {
	BPM int
}

var DefaultTempo = Tempo{120}

func MkTempo(bpm int) (Tempo, error) {
	if bpm <= 0 {
		return Tempo{}, errors.Errorf("tempo must be positive, got %dbpm", bpm)
	}
	return Tempo{bpm}, nil
}

/* TempoFromMicros converts a microseconds-per-quarter-note encoding (the wire
 * form of a tempo change) to beats per minute. */
func TempoFromMicros(usPerQuarter int) (Tempo, error) {
	if usPerQuarter <= 0 {
		return Tempo{}, errors.Errorf("microseconds per quarter must be positive, got %d", usPerQuarter)
	}
	return Tempo{microsPerMinute / usPerQuarter}, nil
}

func (t Tempo) Micros() int {
	return microsPerMinute / t.BPM
}

func (t Tempo) String() string {
	return fmt.Sprintf("%dbpm", t.BPM)
}
