package main

import (
	"os"

	"github.com/hearth-home/hearth-ctl/cmd"
	"github.com/hearth-home/hearth-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
