// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-scout/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pubmed-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-scout",
	Short: "Query PubMed and filter publications by author affiliation",
	Long: `pubmed-scout queries the NCBI PubMed E-utilities API, retrieves
bibliographic records for matching articles, and filters them by author
institutional affiliation against a reference list of institutions
(optionally country-qualified). Matched publications are emitted as a
tab-delimited report and mirrored to the console.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-scout.yaml or ~/.config/pubmed-scout/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-scout"))
		}
	}

	viper.SetEnvPrefix("PUBMED_SCOUT")
	viper.AutomaticEnv()

	viper.SetDefault("eutils.timeout", defaultTimeout)
	viper.SetDefault("eutils.delay", defaultDelay)
	viper.SetDefault("eutils.retmax", defaultRetMax)
	viper.SetDefault("eutils.batch_size", defaultBatchSize)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
