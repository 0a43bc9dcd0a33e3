package flat

import (
	"github.com/lunixbochs/flatelf/go/models"
)

// Select applies the permission filter, preserving table order. An
// empty selection is a valid result.
func Select(segs []models.SegmentData, filter *models.Filter) []models.SegmentData {
	sel := make([]models.SegmentData, 0, len(segs))
	for _, s := range segs {
		if filter.Match(s.Prot) {
			sel = append(sel, s)
		}
	}
	return sel
}
