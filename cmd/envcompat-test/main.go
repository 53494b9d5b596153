package main

import (
	"os"

	"github.com/baaaaaaaka/envcompat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
