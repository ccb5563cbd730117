package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultPath is read when no config path is given.
const DefaultPath = "config.json"

// EnvPrefix prefixes environment overrides, e.g. FASTAPROC_OUTPUT_DIR.
const EnvPrefix = "FASTAPROC"

type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	// StartDir is where the terminal UI file picker opens.
	StartDir string `mapstructure:"start_dir"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("output_dir", "Output")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("start_dir", ".")
}

// LoadConfig loads config from path (JSON, YAML or TOML by extension). If
// path is empty, looks for ./config.json. A missing file is not an error and
// yields defaults; environment variables override both.
func LoadConfig(path string) (*Config, error) {
	return Load(afero.NewOsFs(), path)
}

// Load is LoadConfig reading from fsys.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	v.SetFs(fsys)
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
