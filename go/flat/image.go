package flat

import (
	"io"

	"github.com/lunixbochs/flatelf/go/models"
)

// Assemble builds the flat image: a zeroed buffer of the layout's size,
// with each segment's file bytes copied in table order. When segments
// overlap, later table entries overwrite earlier ones. The declared but
// unbacked tail of each segment and any inter-segment gap stay zero.
func Assemble(r io.ReaderAt, segs []models.SegmentData, layout *Layout) ([]byte, error) {
	img := make([]byte, layout.Size)
	for i, s := range segs {
		if s.FileSize == 0 {
			continue
		}
		pos := s.Addr - layout.Base
		if _, err := r.ReadAt(img[pos:pos+s.FileSize], int64(s.Off)); err != nil {
			return nil, models.IOf("segment %d: short read at %#x+%#x: %s", i, s.Off, s.FileSize, err)
		}
	}
	return img, nil
}
