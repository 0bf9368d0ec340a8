package common

import (
	"fmt"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner followed by the settings that
// decide where scores come from.
func PrintBanner(version string, config *Config) {
	banner.PrintSimple("FinHealth", version)
	for _, line := range bannerLines(config) {
		fmt.Println("  " + line)
	}
	fmt.Println()
}

func bannerLines(config *Config) []string {
	if config == nil {
		return nil
	}

	cache := "disabled"
	if config.Cache.Enabled {
		cache = fmt.Sprintf("%s, %dh (%s)", config.Cache.Type, config.Cache.Hours, config.Storage.Badger.Path)
	}

	login := "disabled"
	if config.Auth.Enabled {
		login = fmt.Sprintf("enabled, idle timeout %s", config.Auth.IdleTimeout)
	}

	apiKey := "set"
	if config.EODHD.APIKey == "" {
		apiKey = "missing"
	}

	return []string{
		fmt.Sprintf("Dashboard:   http://%s:%d", config.Server.Host, config.Server.Port),
		fmt.Sprintf("Market data: EODHD, default exchange %s, API key %s", config.EODHD.DefaultExchange, apiKey),
		fmt.Sprintf("Search:      %s", config.Search.Provider),
		fmt.Sprintf("Cache:       %s", cache),
		fmt.Sprintf("Login:       %s", login),
		fmt.Sprintf("Merton:      r=%.2f%%, T=%gy", config.Merton.RiskFreeRate*100, config.Merton.Horizon),
	}
}
