// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dme-engine/internal/secrets"
	"github.com/pdiddy/dme-engine/pkg/types"
)

// Flag values win over the config file; the config file wins over defaults
// baked into each stage.

func parserConfig(cmd *cobra.Command) types.ParserConfig {
	timeout, _ := cmd.Flags().GetDuration("match-timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("parser.match_timeout")
	}
	return types.ParserConfig{MatchTimeout: timeout}
}

func submitConfig(cmd *cobra.Command) types.SubmitConfig {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" {
		endpoint = viper.GetString("submit.endpoint")
	}

	timeout := viper.GetDuration("submit.timeout")

	userAgent := viper.GetString("submit.user_agent")
	if userAgent == "" {
		userAgent = "dme-engine/" + version
	}

	token := viper.GetString("submit.api_token")
	if token == "" {
		token = loadedSecrets[secrets.SubmitAPIToken]
	}

	return types.SubmitConfig{
		Endpoint:   endpoint,
		Timeout:    timeout,
		UserAgent:  userAgent,
		APIToken:   token,
		MaxRetries: viper.GetInt("submit.max_retries"),
	}
}

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	if dataDir == "" {
		dataDir = "data"
	}
	return types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: viper.GetInt("store.max_results"),
	}
}
