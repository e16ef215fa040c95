package cmd

import (
	"fmt"
	"os"

	"db-admin/internal/datasource"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec \"SQL\"",
	Short: "Run a single SQL statement",
	Long: `Run one statement against the datasource. Row-returning statements
(SELECT, WITH, SHOW, PRAGMA...) print a result grid; everything else runs
inside a transaction and prints the affected row count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		result, err := src.Execute(args[0])
		if err != nil {
			return err
		}

		if result.IsQuery {
			if len(result.Rows) == 0 {
				fmt.Println("No data found.")
				return nil
			}
			datasource.RenderResultGrid(os.Stdout, result.Columns, result.Rows)
			return nil
		}

		fmt.Printf("%d row(s) affected\n", result.Affected)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(execCmd)
}
