package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seedRows int

var seedCmd = &cobra.Command{
	Use:   "seed TABLE",
	Short: "Fill a table with random data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(sourceName)
		if err != nil {
			return err
		}
		defer src.Close()

		// Fetch row count from Viper (Flag > Config > Default)
		target := viper.GetInt("seed.default_rows")
		if seedRows > 0 {
			target = seedRows
		}

		log.Printf("Seeding %s with %d row(s)...", args[0], target)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(target).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})

		result, err := src.SeedTable(args[0], target, func() {
			bar.Incr()
		})

		uiprogress.Stop()

		if err != nil {
			return err
		}

		fmt.Printf("Inserted %d row(s) into %s\n", result.Inserted, result.Table)
		log.Printf("Seed Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedRows, "rows", 0, "Number of rows to insert (overrides config)")
	viper.BindPFlag("seed.default_rows", seedCmd.Flags().Lookup("rows"))
	viper.SetDefault("seed.default_rows", 100)
}
