package cmd

import (
	"os"

	"db-admin/internal/datasource"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe TABLE",
	Short: "Show the column layout of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		structure, err := src.TableStructure(args[0])
		if err != nil {
			return err
		}

		datasource.RenderStructure(os.Stdout, args[0], structure)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(describeCmd)
}
