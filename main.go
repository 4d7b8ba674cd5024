package main

import (
	"github.com/redreef/alphaflow/internal/cli"
)

func main() {
	cli.Run()
}
