package models

import (
	"testing"
)

func TestFilterMatch(t *testing.T) {
	all := Filter{Mode: FilterAll}
	require := Filter{Mode: FilterRequire, Prot: ProtRead | ProtWrite}
	exclude := Filter{Mode: FilterExclude, Prot: ProtExec}

	cases := []struct {
		prot                  Prot
		all, require, exclude bool
	}{
		{0, true, false, true},
		{ProtRead, true, false, true},
		{ProtRead | ProtWrite, true, true, true},
		{ProtRead | ProtWrite | ProtExec, true, true, false},
		{ProtRead | ProtExec, true, false, false},
	}
	for _, c := range cases {
		if all.Match(c.prot) != c.all {
			t.Fatalf("ALL mismatch for %s", c.prot)
		}
		if require.Match(c.prot) != c.require {
			t.Fatalf("REQUIRE(rw) mismatch for %s", c.prot)
		}
		if exclude.Match(c.prot) != c.exclude {
			t.Fatalf("EXCLUDE(x) mismatch for %s", c.prot)
		}
	}
}
