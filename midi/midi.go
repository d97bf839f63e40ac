package midi

import (
	"fmt"
	"strconv"
)

const (
	PitchD4 = 50
	PitchA4 = 57
	PitchC5 = 60
	PitchB5 = 71
	PitchF6 = 77
)
const (
	InstPiano = 0
	InstEPiano = 5
	InstGuitar = 25
	InstEGuitar = 27
	InstViolin = 41
	InstVoice = 54
	InstWoodblock = 115
)

var degreeNames []string = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func PitchName(pitch uint8) string {
	degree := pitch % 12
	octave := pitch / 12
	return fmt.Sprintf("%s%d", degreeNames[degree], octave)
}

var degreeValues = map[rune]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

/* ParsePitch is the inverse of PitchName. It accepts an upper-case note
 * letter, at most one accidental (# ♯ b ♭) and a non-negative octave. */
func ParsePitch(name string) (uint8, error) {
	runes := []rune(name)
	if len(runes) < 2 {
		return 0, fmt.Errorf("malformed pitch %q", name)
	}
	degree, ok := degreeValues[runes[0]]
	if !ok {
		return 0, fmt.Errorf("bad note letter in pitch %q", name)
	}
	i := 1
	switch runes[i] {
	case '#', '♯':
		degree++
		i++
	case 'b', '♭':
		degree--
		i++
	}
	if i >= len(runes) || runes[i] < '0' || runes[i] > '9' {
		return 0, fmt.Errorf("missing octave in pitch %q", name)
	}
	octave, err := strconv.Atoi(string(runes[i:]))
	if err != nil {
		return 0, fmt.Errorf("bad octave in pitch %q", name)
	}
	value := octave*12 + degree
	if value < 0 || value > 127 {
		return 0, fmt.Errorf("pitch %q outside midi range", name)
	}
	return uint8(value), nil
}

var instNames map[int]string
var instIds map[string]int

func inst(id int, name string) {
	instNames[id] = name
	instIds[name] = id
}

func init() {
	instNames = make(map[int]string)
	instIds = make(map[string]int)
	inst(InstPiano, "Piano")
	inst(InstEPiano, "E. Piano")
	inst(InstGuitar, "Guitar")
	inst(InstEGuitar, "E. Guitar")
	inst(InstViolin, "Violin")
	inst(InstVoice, "Voice")
	inst(InstWoodblock, "Woodblock")
}

func InstName(id int) string {
	name, ok := instNames[id]
	if ok {
		return name
	}
	return fmt.Sprintf("GM%03d", id)
}

func InstId(name string) int {
	id, ok := instIds[name]
	if ok {
		return id
	}
	return -1
}
