// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-scout/internal/eutils"
	"github.com/pdiddy/pubmed-scout/internal/secrets"
	"github.com/pdiddy/pubmed-scout/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultRetMax    = 10000
	defaultBatchSize = eutils.DefaultBatchSize
	defaultUserAgent = "pubmed-scout/0.1"
)

// addEutilsFlags registers the E-utilities flags shared by search and report.
func addEutilsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("retmax", 0, "maximum number of results to fetch (default 10000)")
	cmd.Flags().String("email", "", "contact email for NCBI API compliance")
	cmd.Flags().String("api-key", "", "NCBI API key for higher rate limits")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	cmd.Flags().Duration("delay", 0, "fixed delay between consecutive requests (default 1s)")
}

// eutilsConfig assembles the client configuration from flags, falling back
// to the config file and the secrets directory.
func eutilsConfig(cmd *cobra.Command) types.EutilsConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("eutils.timeout")
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("eutils.delay")
	}
	retmax, _ := cmd.Flags().GetInt("retmax")
	if retmax == 0 {
		retmax = viper.GetInt("eutils.retmax")
	}
	email, _ := cmd.Flags().GetString("email")
	apiKey, _ := cmd.Flags().GetString("api-key")

	return types.EutilsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:    viper.GetString("eutils.base_url"),
		RetMax:     retmax,
		BatchSize:  viper.GetInt("eutils.batch_size"),
		FetchDelay: delay,
		Email:      secrets.Fallback(loadedSecrets, secrets.KeyEmail, email),
		APIKey:     secrets.Fallback(loadedSecrets, secrets.KeyAPIKey, apiKey),
	}
}
