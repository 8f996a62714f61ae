package main

import (
	"os"

	"github.com/eenv-dev/eenv/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
