// Package main is the entry point for the trakr application.
package main

import (
	"github.com/samber/lo"
	"github.com/trakr-cli/trakr/cmd"
	"github.com/trakr-cli/trakr/config"
	"github.com/trakr-cli/trakr/internal/cache"
	"github.com/trakr-cli/trakr/internal/sync"
	"github.com/trakr-cli/trakr/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background processes for cache maintenance and
	// deferred write replay.
	go cache.CollectGarbage()
	go sync.ReconcileFailures()

	cmd.Execute()
}
