// Package main is the entry point for the mthree CLI.
//
// mthree is a command-line tool for deploying containerized workloads to a
// local minikube cluster: it starts the cluster, builds the image inside the
// cluster's Docker daemon, applies the manifests in order, waits for the
// rollout, and opens a local tunnel to the service.
//
// Commands: init, deploy, teardown, doctor, status.
//
// For detailed usage information, run:
//
//	mthree --help
package main

import (
	"fmt"
	"os"

	"github.com/banwar54/mthree/cmd/mthree/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
