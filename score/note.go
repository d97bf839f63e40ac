package score

import (
	"fmt"
	"sort"
)

type Note struct {
	Pitch uint8 /* midi pitch */
	Start, End Count
}

func (n Note) String() string {
	return fmt.Sprintf("%d[%v-%v]", n.Pitch, n.Start, n.End)
}

/* Part is one instrument's stream of notes, sorted by start position. */
type Part struct {
	Instrument int /* general midi program number */
	notes []Note
}

func MkPart(instrument int) *Part {
	return &Part{Instrument: instrument}
}

func (p *Part) Add(n Note) {
	i := sort.Search(len(p.notes), func(i int) bool {
		d := p.notes[i].Start.Cmp(n.Start)
		return d > 0 || (d == 0 && p.notes[i].Pitch > n.Pitch)
	})
	p.notes = append(p.notes, Note{})
	copy(p.notes[i+1:], p.notes[i:])
	p.notes[i] = n
}

func (p *Part) Notes() []Note {
	return p.notes
}
