package bridge

import (
	"bytes"
	"strings"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/wallet"
	"github.com/spf13/viper"
)

const envPrefix = "VCX"

// Config is the library configuration given to the init call as JSON. Every
// key can be overridden with a VCX_ prefixed environment variable, e.g.
// VCX_POOL_NAME.
type Config struct {
	PoolName        string `mapstructure:"pool_name"`
	InstitutionDID  string `mapstructure:"institution_did"`
	ServiceEndpoint string `mapstructure:"service_endpoint"`
	StorePath       string `mapstructure:"store_path"`
	StoreKey        string `mapstructure:"store_key"`
	MaxOpenWallets  int    `mapstructure:"max_open_wallets"`
	StatsInterval   int    `mapstructure:"stats_interval"` // minutes, 0 disables
}

var defaults = map[string]any{
	"pool_name":        "",
	"institution_did":  "",
	"service_endpoint": "",
	"store_path":       "",
	"store_key":        "",
	"max_open_wallets": wallet.DefaultMaxOpen,
	"stats_interval":   5,
}

// ParseConfig reads the JSON config. An empty string gives the defaults.
func ParseConfig(data string) (cfg Config, err error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if strings.TrimSpace(data) == "" {
		data = "{}"
	}
	if err := v.ReadConfig(bytes.NewBufferString(data)); err != nil {
		return cfg, errcode.Common.New(errcode.InvalidJSON, "config: %v", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errcode.Common.New(errcode.InvalidOption, "config: %v", err)
	}
	if cfg.InstitutionDID != "" && !validDID(cfg.InstitutionDID) {
		return cfg, errcode.Common.New(errcode.InvalidDID, "institution_did %s", cfg.InstitutionDID)
	}
	return cfg, nil
}
