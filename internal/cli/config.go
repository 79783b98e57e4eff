package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/roster/internal/paths"
	"github.com/mesh-intelligence/roster/internal/rules"
	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "ROSTER"

	cfgKeyBackend          = "backend"
	cfgKeyEnforcePostOwner = "enforce_post_owner"
	cfgKeyLogLevel         = "log_level"
	cfgKeyLogFormat        = "log_format"
	cfgKeyLogFile          = "log_file"
	cfgKeyMemberTypes      = "member_types"

	defaultBackend   = types.BackendMemory
	defaultLogLevel  = "warn"
	defaultLogFormat = logFormatText
)

// configFile is the structure of config.yaml.
type configFile struct {
	Backend          string           `yaml:"backend"`
	EnforcePostOwner bool             `yaml:"enforce_post_owner"`
	LogLevel         string           `yaml:"log_level"`
	LogFormat        string           `yaml:"log_format"`
	LogFile          string           `yaml:"log_file,omitempty"`
	MemberTypes      []memberTypeSeed `yaml:"member_types"`
}

// memberTypeSeed is one member_types entry of config.yaml.
type memberTypeSeed struct {
	ID              string `mapstructure:"id" yaml:"id"`
	Discount        string `mapstructure:"discount" yaml:"discount"`
	MonthPostsLimit int    `mapstructure:"month_posts_limit" yaml:"month_posts_limit"`
}

// defaultConfigFile returns the values init writes.
func defaultConfigFile() configFile {
	cfg := configFile{
		Backend:          defaultBackend,
		EnforcePostOwner: true,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
	}
	for _, m := range types.DefaultMemberTypes() {
		cfg.MemberTypes = append(cfg.MemberTypes, memberTypeSeed{
			ID:              m.ID,
			Discount:        m.Discount.String(),
			MonthPostsLimit: m.MonthPostsLimit,
		})
	}
	return cfg
}

// settings is the decoded configuration.
type settings struct {
	config    types.Config
	options   rules.Options
	logLevel  string
	logFormat string
	logFile   string
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// A missing directory or config.yaml is not an error. ROSTER_* environment
// variables override file values.
func loadConfig(configDirFlag string) (*viper.Viper, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyEnforcePostOwner, true)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// readSettings decodes and validates v.
func readSettings(v *viper.Viper) (settings, error) {
	var seeds []memberTypeSeed
	if err := v.UnmarshalKey(cfgKeyMemberTypes, &seeds); err != nil {
		return settings{}, fmt.Errorf("decode %s: %w", cfgKeyMemberTypes, err)
	}

	config := types.Config{Backend: v.GetString(cfgKeyBackend)}
	for _, seed := range seeds {
		discount := decimal.Zero
		if seed.Discount != "" {
			d, err := decimal.NewFromString(seed.Discount)
			if err != nil {
				return settings{}, fmt.Errorf("%w: %q discount %q", types.ErrMemberTypeInvalid, seed.ID, seed.Discount)
			}
			discount = d
		}
		config.MemberTypes = append(config.MemberTypes, types.MemberType{
			ID:              seed.ID,
			Discount:        discount,
			MonthPostsLimit: seed.MonthPostsLimit,
		})
	}
	if err := config.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config: %w", err)
	}

	return settings{
		config:    config,
		options:   rules.Options{EnforcePostOwner: v.GetBool(cfgKeyEnforcePostOwner)},
		logLevel:  v.GetString(cfgKeyLogLevel),
		logFormat: v.GetString(cfgKeyLogFormat),
		logFile:   v.GetString(cfgKeyLogFile),
	}, nil
}
