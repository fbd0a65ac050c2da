package main

import (
	"os"

	"github.com/leeky-osint/leeky/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
