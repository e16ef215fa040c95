package cmd

import (
	"fmt"
	"os"

	"db-admin/internal/datasource"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of a datasource",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		tables, err := src.ListTables()
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			fmt.Println("No tables found.")
			return nil
		}

		datasource.RenderTableList(os.Stdout, tables)
		fmt.Printf("%d table(s)\n", len(tables))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
