package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable the configuration reads.
	EnvPrefix = "TESTPODS"
	// FileName is the configuration file name searched for, without extension.
	FileName = "testpods"
)

// Manager binds flags, environment and the configuration file to a Config.
type Manager struct {
	Viper *viper.Viper
}

// NewManager creates a Manager that searches searchPaths for testpods.yaml.
// Without search paths it looks in the working directory and the user's
// configuration directory.
func NewManager(searchPaths ...string) *Manager {
	viperInstance := viper.New()
	viperInstance.SetConfigName(FileName)
	viperInstance.SetConfigType("yaml")

	if len(searchPaths) == 0 {
		searchPaths = defaultSearchPaths()
	}

	for _, path := range searchPaths {
		viperInstance.AddConfigPath(path)
	}

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	for key, value := range defaults() {
		viperInstance.SetDefault(key, value)
	}

	return &Manager{Viper: viperInstance}
}

func defaultSearchPaths() []string {
	paths := []string{"."}

	dir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, filepath.Join(dir, FileName))
	}

	return paths
}

func defaults() map[string]any {
	return map[string]any{
		"namespace":     DefaultNamespace,
		"strategy":      string(StrategyReadiness),
		"log-times":     1,
		"http-path":     "/",
		"timeout":       DefaultTimeout,
		"poll-interval": time.Duration(0),
		"parallelism":   0,
		"log-level":     DefaultLogLevel,
	}
}

// SetConfigFile makes the Manager read path instead of searching for a file.
func (m *Manager) SetConfigFile(path string) {
	m.Viper.SetConfigFile(path)
}

// AddFlags registers the configuration flags on flags and binds them.
func (m *Manager) AddFlags(flags *pflag.FlagSet) error {
	strategy := StrategyReadiness

	flags.String("kubeconfig", "", "path to the kubeconfig file")
	flags.String("context", "", "kubeconfig context of the cluster, discovered when empty")
	flags.StringP("namespace", "n", DefaultNamespace, "namespace of the pods")
	flags.StringP("selector", "l", "", "label selector picking the pod instead of a name")
	flags.StringP("container", "c", "", "container for logs and exec")
	flags.String("service", "", "service exposing the pod's ports")
	flags.StringP("plan", "f", "", "path to a wait plan")
	flags.Var(&strategy, "strategy", "strategy to wait with: "+strings.Join(strategy.ValidValues(), ", "))
	flags.String("log-pattern", "", "regular expression to find in the logs")
	flags.Int("log-times", 1, "number of log matches required")
	flags.String("port", "", "port to connect to, as 5432 or 5432/tcp")
	flags.String("http-path", "/", "HTTP path to request")
	flags.Int("http-port", 0, "port the HTTP endpoint listens on")
	flags.StringSlice("command", nil, "command to run in the container")
	flags.String("postgres-user", "", "PostgreSQL user")
	flags.String("postgres-password", "", "PostgreSQL password")
	flags.String("postgres-database", "", "PostgreSQL database")
	flags.Duration("timeout", DefaultTimeout, "time budget for the whole wait")
	flags.Duration("poll-interval", 0, "interval between attempts, strategy default when zero")
	flags.Int("parallelism", 0, "maximum number of pods waited for at once")
	flags.String("log-level", DefaultLogLevel, "log level: trace, debug, info, warning or error")

	err := m.Viper.BindPFlags(flags)
	if err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	return nil
}

// Load reads the configuration file if there is one, merges environment and
// flags, and validates the result.
func (m *Manager) Load() (*Config, error) {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err = m.Viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the file Load read, or "" when none was found.
func (m *Manager) ConfigFileUsed() string {
	return m.Viper.ConfigFileUsed()
}
