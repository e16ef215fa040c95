package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run PATH",
	Short: "Execute a .sql file, or every .sql file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		start := time.Now()
		results, err := src.RunPath(args[0])

		// Completed files stay committed even when a later one fails, so
		// report them before surfacing the error.
		var statements int
		var affected int64
		for _, r := range results {
			fmt.Printf("[✓] %-30s : %d statement(s), %d row(s) affected\n",
				filepath.Base(r.Path), r.Statements, r.Affected)
			statements += r.Statements
			affected += r.Affected
		}
		if err != nil {
			return err
		}

		fmt.Println("--------------------------------------------------")
		fmt.Printf("%d file(s), %d statement(s), %d row(s) affected\n",
			len(results), statements, affected)
		log.Printf("Run Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
}
