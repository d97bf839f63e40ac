package main

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/PatrickCelentano/mxm-go/convert"
	"github.com/PatrickCelentano/mxm-go/midi"
)

const outResolution = 24

func die(err error) {
	fmt.Fprintln(os.Stderr, "mxmconv:", err)
	os.Exit(1)
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s in.mid out.mid\n", os.Args[0])
		os.Exit(2)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		die(err)
	}
	in, err := smf.ReadFrom(f)
	f.Close()
	if err != nil {
		die(err)
	}
	src, err := midi.SourceFromSMF(in)
	if err != nil {
		die(err)
	}
	sc, err := convert.ReadScore(src)
	if err != nil {
		/* per-event problems; the rest of the piece converted fine */
		fmt.Fprintf(os.Stderr, "mxmconv: %s: %v\n", os.Args[1], err)
	}
	snk := midi.MkSMFSink(outResolution)
	if err := convert.WriteScore(sc, snk); err != nil {
		fmt.Fprintf(os.Stderr, "mxmconv: %s: %v\n", os.Args[2], err)
	}
	if err := snk.SMF().WriteFile(os.Args[2]); err != nil {
		die(err)
	}
}
