/*
flag package sets up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic.
	For service dependent flags please define in their respective package.
*/

package flag

import (
	"flag"
)

const (
	ApiServer = "api_server"
	Pipeline  = "pipeline"
	Seed      = "seed"
)

var (
	IsDevelopment bool

	// ServiceName tags log entries. Each binary sets its own name in main
	// before re-initializing the logger.
	ServiceName = ApiServer
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
}

// Parse parses the shared flags together with any service specific ones.
// Must be called from main before any flag value is read.
func Parse() {
	flag.Parse()
}
