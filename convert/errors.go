package convert

import (
	"fmt"

	"github.com/PatrickCelentano/mxm-go/midi"
	"github.com/PatrickCelentano/mxm-go/score"
)

/* UnterminatedNoteError reports a note-on with no note-off for the same
 * pitch at or after its start. The note is dropped but the run continues. */
type UnterminatedNoteError struct {
	Track int
	Pitch uint8
	Start score.Count
}

func (e UnterminatedNoteError) Error() string {
	return fmt.Sprintf("track %d: unterminated %s starting at %v", e.Track, midi.PitchName(e.Pitch), e.Start)
}
