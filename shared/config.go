// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ModerationConfig holds the tunables of the moderation pipeline.
// Every key can be overridden by an environment variable, e.g. CONTENTGUARD_DISPATCHER_WORKERS.
type ModerationConfig struct {
	Dispatcher DispatcherConfig `mapstructure:"dispatcher"`
	Scanner    ScannerConfig    `mapstructure:"scanner"`
	Policy     PolicyConfig     `mapstructure:"policy"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Daemon     DaemonConfig     `mapstructure:"daemon"`
	HTTP       HTTPConfig       `mapstructure:"http"`
}

type DispatcherConfig struct {
	Workers     int           `mapstructure:"workers"`
	QueueSize   int           `mapstructure:"queue_size"`
	JobTimeout  time.Duration `mapstructure:"job_timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	// retries per second shared by all workers
	RetryRate   float64       `mapstructure:"retry_rate"`
	DedupeSize  int           `mapstructure:"dedupe_size"`
	DedupeTTL   time.Duration `mapstructure:"dedupe_ttl"`
}

type ScannerConfig struct {
	MaxScanChars int `mapstructure:"max_scan_chars"`
}

type PolicyConfig struct {
	DefaultQuarantineDays int           `mapstructure:"default_quarantine_days"`
	CacheSize             int           `mapstructure:"cache_size"`
	CacheTTL              time.Duration `mapstructure:"cache_ttl"`
}

type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DaemonConfig struct {
	ExpiryInterval time.Duration `mapstructure:"expiry_interval"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
	// requests carrying this token as user id may read everything. Used by the write-path hooks.
	ServiceToken string `mapstructure:"service_token"`
}

func setModerationDefaults(v *viper.Viper) {
	v.SetDefault("dispatcher.workers", 4)
	v.SetDefault("dispatcher.queue_size", 256)
	v.SetDefault("dispatcher.job_timeout", 30*time.Second)
	v.SetDefault("dispatcher.max_attempts", 3)
	v.SetDefault("dispatcher.retry_rate", 5.0)
	v.SetDefault("dispatcher.dedupe_size", 4096)
	v.SetDefault("dispatcher.dedupe_ttl", 10*time.Minute)
	v.SetDefault("scanner.max_scan_chars", 100_000)
	v.SetDefault("policy.default_quarantine_days", 7)
	v.SetDefault("policy.cache_size", 1024)
	v.SetDefault("policy.cache_ttl", time.Minute)
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.timeout", 5*time.Second)
	v.SetDefault("daemon.expiry_interval", time.Minute)
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.service_token", "")
}

func LoadModerationConfig() (ModerationConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("CONTENTGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setModerationDefaults(v)

	var cfg ModerationConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ModerationConfig{}, err
	}
	return cfg, nil
}

// DefaultModerationConfig ignores the environment. Mostly useful in tests.
func DefaultModerationConfig() ModerationConfig {
	v := viper.New()
	setModerationDefaults(v)
	var cfg ModerationConfig
	_ = v.Unmarshal(&cfg) // defaults always decode
	return cfg
}
