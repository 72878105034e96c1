// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package commands

import (
	"fmt"

	"code.hybscloud.com/pubsub"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and registry defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pubsubsim %s (commit: %s, built: %s)\n", version, commit, date)
		fmt.Fprintf(cmd.OutOrStdout(), "channels=%d capacity=%d SET_ROLE=%#x GET_ROLE=%#x\n",
			pubsub.DefaultChannels, pubsub.DefaultCapacity, uint32(pubsub.CmdSetRole), uint32(pubsub.CmdGetRole))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
