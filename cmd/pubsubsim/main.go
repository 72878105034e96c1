// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package main

import (
	"os"

	"code.hybscloud.com/pubsub/cmd/pubsubsim/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Failures are already printed per scenario
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
