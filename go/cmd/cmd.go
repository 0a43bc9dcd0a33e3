package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/marcinbor85/gohex"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/lunixbochs/flatelf/go/flat"
	"github.com/lunixbochs/flatelf/go/models"
)

type FlatelfCmd struct {
	Config *models.Config
	Flags  *flag.FlagSet

	hexOut bool
}

func NewFlatelfCmd() *FlatelfCmd {
	return &FlatelfCmd{Flags: flag.NewFlagSet("cli", flag.ExitOnError)}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *FlatelfCmd) PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	if err, ok := err.(stackTracer); ok && c.Config != nil && c.Config.Verbose {
		for _, f := range err.StackTrace() {
			fmt.Fprintf(os.Stderr, "  %s:%d %n()\n", f, f, f)
			if fmt.Sprintf("%n", f) == "main.main" {
				break
			}
		}
	}
}

// ParseFilter turns the -if/-if-not flag values into the pipeline's
// selection predicate. Only one of the two may be given.
func ParseFilter(require, exclude string) (models.Filter, error) {
	if require != "" && exclude != "" {
		return models.Filter{}, errors.New("cannot combine -if and -if-not")
	}
	if require != "" {
		prot, err := models.ParseProt(require)
		if err != nil {
			return models.Filter{}, errors.Wrap(err, "-if")
		}
		return models.Filter{Mode: models.FilterRequire, Prot: prot}, nil
	}
	if exclude != "" {
		prot, err := models.ParseProt(exclude)
		if err != nil {
			return models.Filter{}, errors.Wrap(err, "-if-not")
		}
		return models.Filter{Mode: models.FilterExclude, Prot: prot}, nil
	}
	return models.Filter{Mode: models.FilterAll}, nil
}

func (c *FlatelfCmd) Run(argv []string) int {
	fs := c.Flags
	iff := fs.String("if", "", "only copy segments with all of these flags (among \"rwx\")")
	ifnot := fs.String("if-not", "", "only copy segments with none of these flags (among \"rwx\")")
	base := fs.String("base", "", "start the flat binary at this address (default: lowest segment address)")
	allowOverlaps := fs.Bool("allow-overlaps", false, "allow overlapping segments (later table entries win)")
	requireOutput := fs.Bool("require-output", false, "error if no segments match instead of writing an empty image")
	hexOut := fs.Bool("hex", false, "write Intel HEX instead of a raw image")
	verbose := fs.Bool("v", false, "verbose output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <elf> <output>\n\nOptions:\n", os.Args[0])
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) {
			flags = append(flags, f)
		})
		models.PrintFlags(flags)
	}
	fs.Parse(argv[1:])

	args := fs.Args()
	if len(args) != 2 {
		fs.Usage()
		return 1
	}

	filter, err := ParseFilter(*iff, *ifnot)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	config := &models.Config{
		Filter:        filter,
		AllowOverlaps: *allowOverlaps,
		RequireOutput: *requireOutput,
		Color:         isatty.IsTerminal(os.Stderr.Fd()),
		Verbose:       *verbose,
		Output:        os.Stderr,
	}
	if *base != "" {
		addr, err := strconv.ParseUint(*base, 0, 64)
		if err != nil {
			c.PrintError(errors.Wrap(err, "-base"))
			return 1
		}
		config.Base = addr
		config.ForceBase = true
	}
	c.Config = config
	c.hexOut = *hexOut

	p, err := ioutil.ReadFile(args[0])
	if err != nil {
		c.PrintError(err)
		return 1
	}
	img, layout, err := flat.Convert(bytes.NewReader(p), config)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	if err := c.WriteOutput(args[1], img, layout); err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}

// WriteOutput writes the finished image to path. The destination never
// holds a partial image: any failure removes the file.
func (c *FlatelfCmd) WriteOutput(path string, img []byte, layout *flat.Layout) error {
	out, err := os.Create(path)
	if err != nil {
		return models.IOf("creating %s: %s", path, err)
	}
	if err := c.writeImage(out, img, layout); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return models.IOf("writing %s: %s", path, err)
	}
	return nil
}

func (c *FlatelfCmd) writeImage(w io.Writer, img []byte, layout *flat.Layout) error {
	if c.hexOut {
		if layout.Base > 0xffffffff {
			return models.IOf("hex output needs a base address below 4GB, have %#x", layout.Base)
		}
		mem := gohex.NewMemory()
		if len(img) > 0 {
			if err := mem.AddBinary(uint32(layout.Base), img); err != nil {
				return models.IOf("hex encoding failed: %s", err)
			}
		}
		if err := mem.DumpIntelHex(w, 16); err != nil {
			return models.IOf("hex encoding failed: %s", err)
		}
		return nil
	}
	if _, err := w.Write(img); err != nil {
		return models.IOf("write failed: %s", err)
	}
	return nil
}
