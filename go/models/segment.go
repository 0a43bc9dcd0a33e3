package models

import (
	"unicode"

	"github.com/pkg/errors"
)

// Prot holds a segment's permission bits, using the ELF p_flags values.
type Prot uint32

const (
	ProtExec  Prot = 1 << 0
	ProtWrite Prot = 1 << 1
	ProtRead  Prot = 1 << 2
)

// ParseProt parses a flag string like "rx" or "RW" into permission bits.
func ParseProt(s string) (Prot, error) {
	var prot Prot
	for _, c := range s {
		var bit Prot
		switch c {
		case 'r', 'R':
			bit = ProtRead
		case 'w', 'W':
			bit = ProtWrite
		case 'x', 'X':
			bit = ProtExec
		default:
			return 0, errors.Errorf("unknown flag '%c'", c)
		}
		if prot&bit != 0 {
			return 0, errors.Errorf("duplicate flag '%c'", unicode.ToLower(c))
		}
		prot |= bit
	}
	return prot, nil
}

func (p Prot) String() string {
	out := []byte("---")
	if p&ProtRead != 0 {
		out[0] = 'r'
	}
	if p&ProtWrite != 0 {
		out[1] = 'w'
	}
	if p&ProtExec != 0 {
		out[2] = 'x'
	}
	return string(out)
}

// SegmentData describes one loadable program header entry.
type SegmentData struct {
	Off      uint64
	Addr     uint64
	FileSize uint64
	MemSize  uint64
	Prot     Prot
	Align    uint64
}

func (s *SegmentData) ContainsPhys(addr uint64) bool {
	return s.Off <= addr && addr < s.Off+s.FileSize
}

func (s *SegmentData) ContainsVirt(addr uint64) bool {
	return s.Addr <= addr && addr < s.Addr+s.MemSize
}

// Span returns the segment's [start, end) range in the address space.
func (s *SegmentData) Span() Span {
	return Span{Start: s.Addr, End: s.Addr + s.MemSize}
}

type Span struct {
	Start, End uint64
}

func (s *Span) Overlaps(o *Span) bool {
	return (s.Start >= o.Start && s.Start < o.End) || (o.Start >= s.Start && o.Start < s.End)
}
