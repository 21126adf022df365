package main

import (
	"os"

	"github.com/AnyUserName/genkan/cmd"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Respect container CPU quotas; the default worker count follows GOMAXPROCS.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
