package main

import (
	"os"

	"github.com/pavelvrba/bookorganizer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
