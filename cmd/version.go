package cmd

import (
	"encoding/json"
	"fmt"

	"europarl-tamv/pkg/util"

	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "打印版本信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := util.GetVersion()
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "europarl-tamv %s\n", info)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "以 JSON 格式输出")
	return cmd
}
