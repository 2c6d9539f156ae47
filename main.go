package main

import (
	"os"

	"github.com/thenoetrevino/ordo/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
