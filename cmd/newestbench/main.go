// Command newestbench times two ways of fetching the newest order of every
// business partner in an id range.
package main

import (
	"os"

	"github.com/dshills/newestbench/internal/errors"
	"github.com/dshills/newestbench/internal/log"
)

var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		qErr := errors.GetError(err)
		log.Error("newestbench failed",
			log.String("category", string(qErr.Category)),
			log.String("code", qErr.Code),
			log.Err(err),
		)
		os.Exit(1)
	}
}
