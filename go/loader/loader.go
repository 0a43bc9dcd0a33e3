package loader

import (
	"encoding/binary"
	"io"

	"github.com/lunixbochs/struc"
)

type LoaderBase struct {
	bits      int
	byteOrder binary.ByteOrder
	entry     uint64
}

func (l *LoaderBase) Bits() int {
	return l.bits
}

func (l *LoaderBase) ByteOrder() binary.ByteOrder {
	if l.byteOrder == nil {
		return binary.LittleEndian
	}
	return l.byteOrder
}

func (l *LoaderBase) Entry() uint64 {
	return l.entry
}

func unpackAt(r io.ReaderAt, i interface{}, at uint64, order binary.ByteOrder) (int, error) {
	size, err := struc.Sizeof(i)
	if err != nil {
		return 0, err
	}
	return size, struc.UnpackWithOrder(io.NewSectionReader(r, int64(at), int64(size)), i, order)
}
