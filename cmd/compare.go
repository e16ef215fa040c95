package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	compareWith string
	generateSQL bool
)

var compareCmd = &cobra.Command{
	Use:   "compare TABLE",
	Short: "Compare a table's structure between two datasources",
	Long: `Compare introspects TABLE on the current datasource and on the one named
by --with, normalizes both structures and reports added, missing and
differing columns. With --generate-sql an ALTER script aligning this side
with the other is written to the export directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mine, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer mine.Close()

		other, err := openSource(compareWith)
		if err != nil {
			return err
		}
		defer other.Close()

		report, err := mine.CompareWith(args[0], other, generateSQL, viper.GetString("export_dir"))
		if err != nil {
			return err
		}

		fmt.Print(report)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareWith, "with", "", "Datasource to compare against")
	compareCmd.Flags().BoolVar(&generateSQL, "generate-sql", false, "Write an ALTER script for the differences")
	compareCmd.MarkFlagRequired("with")
}
