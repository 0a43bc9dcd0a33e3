package flat

import (
	"fmt"
	"io"

	"github.com/mgutz/ansi"

	"github.com/lunixbochs/flatelf/go/loader"
	"github.com/lunixbochs/flatelf/go/models"
)

// Convert runs the whole pipeline over an in-memory ELF file: parse the
// header, decode the program header table, select segments, plan the
// layout, and assemble the image. Every stage failure aborts the run.
func Convert(r io.ReaderAt, cfg *models.Config) ([]byte, *Layout, error) {
	f, err := loader.NewElfFile(r)
	if err != nil {
		return nil, nil, err
	}
	segs, err := f.Segments()
	if err != nil {
		return nil, nil, err
	}
	sel := Select(segs, &cfg.Filter)
	if cfg.Verbose {
		printSegments(cfg, sel)
	}
	layout, err := Plan(sel, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		fmt.Fprintf(cfg.Out(), "base address %#x\n", layout.Base)
	}
	img, err := Assemble(r, sel, layout)
	if err != nil {
		return nil, nil, err
	}
	return img, layout, nil
}

func protColor(p models.Prot) string {
	switch {
	case p&models.ProtExec != 0:
		return "red"
	case p&models.ProtWrite != 0:
		return "yellow"
	default:
		return "green"
	}
}

func printSegments(cfg *models.Config, segs []models.SegmentData) {
	w := cfg.Out()
	fmt.Fprintf(w, "segments to copy:\n")
	for _, s := range segs {
		prot := s.Prot.String()
		if cfg.Color {
			prot = ansi.Color(prot, protColor(s.Prot))
		}
		fmt.Fprintf(w, "  %s %#x + %#x bytes in file, %#x + %#x bytes in memory\n",
			prot, s.Off, s.FileSize, s.Addr, s.MemSize)
	}
}
