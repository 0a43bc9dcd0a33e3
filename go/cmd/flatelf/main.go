package main

import (
	"os"

	"github.com/lunixbochs/flatelf/go/cmd"
)

func main() {
	os.Exit(cmd.NewFlatelfCmd().Run(os.Args))
}
