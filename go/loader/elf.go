package loader

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/lunixbochs/flatelf/go/models"
)

var elfMagic = []byte{0x7f, 0x45, 0x4c, 0x46}

const (
	elfClass32  = 1
	elfClass64  = 2
	elfData2LSB = 1
	elfData2MSB = 2
	evCurrent   = 1

	ptLoad = 1

	// canonical program header entry sizes per class; e_phentsize may
	// be larger, in which case trailing bytes are ignored
	phentsize32 = 32
	phentsize64 = 56

	// e_phnum value signalling the real count lives in section 0
	pnXnum = 0xffff
)

type elfIdent struct {
	Magic      [4]byte
	Class      uint8
	Data       uint8
	Version    uint8
	OSABI      uint8
	ABIVersion uint8
	Pad        [7]byte
}

type elfHeader32 struct {
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint32
	Phoff     uint32
	Shoff     uint32
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

type elfHeader64 struct {
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

type elfProg32 struct {
	Type   uint32
	Off    uint32
	Vaddr  uint32
	Paddr  uint32
	Filesz uint32
	Memsz  uint32
	Flags  uint32
	Align  uint32
}

type elfProg64 struct {
	Type   uint32
	Flags  uint32
	Off    uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

type ElfFile struct {
	LoaderBase
	r         io.ReaderAt
	phoff     uint64
	phentsize int
	phnum     int
}

func getMagic(r io.ReaderAt) []byte {
	ret := make([]byte, 4)
	r.ReadAt(ret, 0)
	return ret
}

func MatchElf(r io.ReaderAt) bool {
	return bytes.Equal(getMagic(r), elfMagic)
}

// NewElfFile validates the identification bytes and decodes the file
// header. The byte order and field widths chosen here drive every later
// multi-byte read.
func NewElfFile(r io.ReaderAt) (*ElfFile, error) {
	var ident elfIdent
	identSize, err := unpackAt(r, &ident, 0, binary.LittleEndian)
	if err != nil {
		return nil, models.Formatf("short read on ELF ident: %s", err)
	}
	if !bytes.Equal(ident.Magic[:], elfMagic) {
		return nil, models.Formatf("bad magic % x", ident.Magic)
	}
	if ident.Version != evCurrent {
		return nil, models.Formatf("unsupported ELF version %d", ident.Version)
	}
	var order binary.ByteOrder
	switch ident.Data {
	case elfData2LSB:
		order = binary.LittleEndian
	case elfData2MSB:
		order = binary.BigEndian
	default:
		return nil, models.Formatf("unknown ELF data encoding %d", ident.Data)
	}
	f := &ElfFile{r: r}
	switch ident.Class {
	case elfClass32:
		var hdr elfHeader32
		if _, err := unpackAt(r, &hdr, uint64(identSize), order); err != nil {
			return nil, models.Formatf("ELF header truncated: %s", err)
		}
		f.LoaderBase = LoaderBase{bits: 32, byteOrder: order, entry: uint64(hdr.Entry)}
		f.phoff = uint64(hdr.Phoff)
		f.phentsize = int(hdr.Phentsize)
		f.phnum = int(hdr.Phnum)
	case elfClass64:
		var hdr elfHeader64
		if _, err := unpackAt(r, &hdr, uint64(identSize), order); err != nil {
			return nil, models.Formatf("ELF header truncated: %s", err)
		}
		f.LoaderBase = LoaderBase{bits: 64, byteOrder: order, entry: hdr.Entry}
		f.phoff = hdr.Phoff
		f.phentsize = int(hdr.Phentsize)
		f.phnum = int(hdr.Phnum)
	default:
		return nil, models.Formatf("unknown ELF class %d", ident.Class)
	}
	min := phentsize32
	if f.bits == 64 {
		min = phentsize64
	}
	if f.phentsize < min {
		return nil, models.Formatf("program header entry size %d below class minimum %d", f.phentsize, min)
	}
	if f.phnum == pnXnum {
		return nil, models.Formatf("program header count uses PN_XNUM, which is unsupported")
	}
	return f, nil
}

// Segments decodes the program header table and returns the loadable
// entries in table order.
func (e *ElfFile) Segments() ([]models.SegmentData, error) {
	segs := make([]models.SegmentData, 0, e.phnum)
	for i := 0; i < e.phnum; i++ {
		at := e.phoff + uint64(i)*uint64(e.phentsize)
		var seg models.SegmentData
		var typ uint32
		if e.bits == 64 {
			var prog elfProg64
			if _, err := unpackAt(e.r, &prog, at, e.ByteOrder()); err != nil {
				return nil, models.Formatf("program header table truncated at entry %d", i)
			}
			typ = prog.Type
			seg = models.SegmentData{
				Off:      prog.Off,
				Addr:     prog.Vaddr,
				FileSize: prog.Filesz,
				MemSize:  prog.Memsz,
				Prot:     models.Prot(prog.Flags),
				Align:    prog.Align,
			}
		} else {
			var prog elfProg32
			if _, err := unpackAt(e.r, &prog, at, e.ByteOrder()); err != nil {
				return nil, models.Formatf("program header table truncated at entry %d", i)
			}
			typ = prog.Type
			seg = models.SegmentData{
				Off:      uint64(prog.Off),
				Addr:     uint64(prog.Vaddr),
				FileSize: uint64(prog.Filesz),
				MemSize:  uint64(prog.Memsz),
				Prot:     models.Prot(prog.Flags),
				Align:    uint64(prog.Align),
			}
		}
		if typ != ptLoad {
			continue
		}
		if seg.MemSize < seg.FileSize {
			return nil, models.Formatf("segment %d: memory size %#x below file size %#x", i, seg.MemSize, seg.FileSize)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}
