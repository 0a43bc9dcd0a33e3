package models

// FilterMode selects how a Filter treats a segment's permission bits.
type FilterMode int

const (
	// FilterAll keeps every loadable segment.
	FilterAll FilterMode = iota
	// FilterRequire keeps segments whose permissions include every Prot bit.
	FilterRequire
	// FilterExclude keeps segments whose permissions share no Prot bit.
	FilterExclude
)

type Filter struct {
	Mode FilterMode
	Prot Prot
}

func (f *Filter) Match(p Prot) bool {
	switch f.Mode {
	case FilterRequire:
		return p&f.Prot == f.Prot
	case FilterExclude:
		return p&f.Prot == 0
	}
	return true
}
