package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export TABLE",
	Short: "Export table data as multi-row INSERT scripts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		dir := viper.GetString("export_dir")

		log.Printf("Exporting %s to %s...", args[0], dir)
		start := time.Now()

		// The bar is created on the first progress tick, once the batch
		// count is known.
		uiprogress.Start()
		var bar *uiprogress.Bar
		result, err := src.ExportData(args[0], dir, func(done, total int) {
			if bar == nil {
				bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return "Exporting: "
				})
			}
			bar.Set(done)
		})
		uiprogress.Stop()

		if err != nil {
			return err
		}

		if result.Rows == 0 {
			fmt.Printf("Table %s is empty, nothing to export.\n", result.Table)
			return nil
		}

		fmt.Printf("Exported %d row(s) from %s into %d file(s) under %s\n",
			result.Rows, result.Table, len(result.Files), dir)
		log.Printf("Export Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Target directory for the .sql files (overrides config)")
	viper.BindPFlag("export_dir", exportCmd.Flags().Lookup("dir"))
}
