package utils

// Version is the version of the CLI. It's overwritten by the build with
// -ldflags "-X github.com/findy-network/credat/agent/utils.Version=...".
var Version = "0.1.0-dev"
