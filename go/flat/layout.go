package flat

import (
	"github.com/lunixbochs/flatelf/go/models"
)

// MaxImageSize bounds the flat image so a corrupt address span can't
// exhaust memory on allocation.
const MaxImageSize = 1 << 32

// Layout places the image: output offset i maps to address Base+i.
type Layout struct {
	Base uint64
	Size uint64
}

// Plan computes the image's base address and total span from the
// selected segments.
func Plan(segs []models.SegmentData, cfg *models.Config) (*Layout, error) {
	if len(segs) == 0 {
		if cfg.RequireOutput {
			return nil, models.Selectionf("no loadable segments matched the filter")
		}
		layout := &Layout{}
		if cfg.ForceBase {
			layout.Base = cfg.Base
		}
		return layout, nil
	}
	base := segs[0].Addr
	end := uint64(0)
	for i, s := range segs {
		if s.Addr+s.MemSize < s.Addr {
			return nil, models.Layoutf("segment %d: address range %#x+%#x overflows", i, s.Addr, s.MemSize)
		}
		if s.Addr < base {
			base = s.Addr
		}
		if s.Addr+s.MemSize > end {
			end = s.Addr + s.MemSize
		}
	}
	if !cfg.AllowOverlaps {
		if err := checkOverlaps(segs); err != nil {
			return nil, err
		}
	}
	if cfg.ForceBase {
		if base < cfg.Base {
			return nil, models.Layoutf("segment at %#x is below base address %#x", base, cfg.Base)
		}
		base = cfg.Base
	}
	size := end - base
	if size == 0 && cfg.RequireOutput {
		return nil, models.Layoutf("selected segments span zero bytes")
	}
	if size > MaxImageSize {
		return nil, models.Layoutf("image size %#x exceeds limit %#x", size, uint64(MaxImageSize))
	}
	return &Layout{Base: base, Size: size}, nil
}

func checkOverlaps(segs []models.SegmentData) error {
	for i := 0; i < len(segs); i++ {
		a := segs[i].Span()
		for j := i + 1; j < len(segs); j++ {
			b := segs[j].Span()
			if a.Overlaps(&b) {
				return models.Layoutf("segment at %#x+%#x overlaps segment at %#x (use -allow-overlaps to copy anyway)",
					segs[i].Addr, segs[i].MemSize, segs[j].Addr)
			}
		}
	}
	return nil
}
