package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lunixbochs/flatelf/go/flat"
	"github.com/lunixbochs/flatelf/go/models"
)

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "")
	if err != nil || f.Mode != models.FilterAll {
		t.Fatalf("Bad default filter: %+v %v", f, err)
	}
	f, err = ParseFilter("rw", "")
	if err != nil || f.Mode != models.FilterRequire || f.Prot != models.ProtRead|models.ProtWrite {
		t.Fatalf("Bad require filter: %+v %v", f, err)
	}
	f, err = ParseFilter("", "x")
	if err != nil || f.Mode != models.FilterExclude || f.Prot != models.ProtExec {
		t.Fatalf("Bad exclude filter: %+v %v", f, err)
	}
	if _, err = ParseFilter("r", "w"); err == nil {
		t.Fatal("Failed to error on combined -if and -if-not.")
	}
	if _, err = ParseFilter("z", ""); err == nil {
		t.Fatal("Failed to error on a bad flag string.")
	}
}

func TestWriteOutputRaw(t *testing.T) {
	dir, err := ioutil.TempDir("", "flatelf")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.bin")
	img := []byte{1, 2, 3, 4}
	cmd := NewFlatelfCmd()
	if err := cmd.WriteOutput(path, img, &flat.Layout{Base: 0x1000, Size: 4}); err != nil {
		t.Fatal(err)
	}
	p, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(p) != string(img) {
		t.Fatalf("Bad output bytes: %v", p)
	}
}

func TestWriteOutputHex(t *testing.T) {
	dir, err := ioutil.TempDir("", "flatelf")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.hex")
	cmd := NewFlatelfCmd()
	cmd.hexOut = true
	if err := cmd.WriteOutput(path, []byte{1, 2, 3, 4}, &flat.Layout{Base: 0x1000, Size: 4}); err != nil {
		t.Fatal(err)
	}
	p, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(p), ":") {
		t.Fatalf("Output is not Intel HEX: %q", p)
	}

	// a failure must not leave a file behind
	bad := filepath.Join(dir, "bad.hex")
	err = cmd.WriteOutput(bad, []byte{1}, &flat.Layout{Base: 1 << 33, Size: 1})
	if err == nil {
		t.Fatal("Expected an error for a 64-bit base.")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Fatal("Partial output was left behind.")
	}
}
