// Package main is the entry point for the podfetch application.
package main

import (
	"github.com/podfetch/podfetch/cmd"
	"github.com/podfetch/podfetch/config"
	"github.com/podfetch/podfetch/internal/cache"
	"github.com/podfetch/podfetch/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired discovery results are removed in the background.
	cache.CollectGarbage()

	cmd.Execute()
}
