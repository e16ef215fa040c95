package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"db-admin/internal/datasource"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile    string
	sourceName string
)

var RootCmd = &cobra.Command{
	Use:   "db-admin",
	Short: "A multi-dialect database administration toolkit",
	Long: `
  ____  ____       _    ____  __  __ ___ _   _
 |  _ \| __ )     / \  |  _ \|  \/  |_ _| \ | |
 | | | |  _ \    / _ \ | | | | |\/| || ||  \| |
 | |_| | |_) |  / ___ \| |_| | |  | || || |\  |
 |____/|____/  /_/   \_\____/|_|  |_|___|_| \_|

DB ADMIN 🧰 - Schema Inspection, Diff & Data Toolkit
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Validate the registry up front. Connections stay lazy because
		// compare needs two sources and everything else needs one.
		if _, err := LoadSourceConfigs(); err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-admin.yaml)")
	RootCmd.PersistentFlags().StringVarP(&sourceName, "source", "s", "", "Datasource name from config (default is the entry marked default: true)")

	// Fallback if no config/flag
	viper.SetDefault("export_dir", "./export_data")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-admin")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// resolveDSN fills the {password} placeholder by prompting on the terminal,
// so credentials can stay out of config files.
func resolveDSN(cfg *SourceConfig) (string, error) {
	if !strings.Contains(cfg.DSN, "{password}") {
		return cfg.DSN, nil
	}

	fmt.Printf("Enter password for %s: ", cfg.Name)
	pass, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.ReplaceAll(cfg.DSN, "{password}", string(pass)), nil
}

// openSource connects the named datasource, or the default one when name is
// empty. Callers own the returned source and must close it.
func openSource(name string) (*datasource.Source, error) {
	cfg, err := FindSourceConfig(name)
	if err != nil {
		return nil, err
	}

	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	src, err := datasource.Open(cfg.Name, cfg.Driver, dsn, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, err
	}

	fmt.Printf("🧰 Connected to %s (%s)\n", cfg.Name, cfg.Driver)
	return src, nil
}
