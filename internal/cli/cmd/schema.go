package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/infrastructure/config"
	"github.com/bnema/tessellate/internal/protocol"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [protocol|config]",
	Short: "Print a JSON schema",
	Long: `Print the JSON schema of the socket protocol messages or of the config
file.

Examples:
  tessellate schema protocol > protocol.schema.json
  tessellate schema config`,
	Args:        cobra.ExactArgs(1),
	ValidArgs:   []string{"protocol", "config"},
	Annotations: standalone,
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		switch args[0] {
		case "protocol":
			data, err = protocol.Schema()
		case "config":
			data, err = config.JSONSchema()
		default:
			return fmt.Errorf("unknown schema %q (use: protocol, config)", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
