// Package config は評価実行の設定を YAML から読み込みます。
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/mleval/pkg/errors"
	"github.com/YuminosukeSato/mleval/pkg/log"
)

// Config holds the evaluation run configuration
type Config struct {
	// Folds は交差検証の fold 数
	Folds int `yaml:"folds"`
	// Seed は分割に使う乱数シード
	Seed uint64 `yaml:"seed"`
	// Stratified は目的属性の比率を fold ごとに揃えるか
	Stratified bool `yaml:"stratified"`
	// Delimiter は列の区切り文字。空なら形式ごとの既定値
	Delimiter string `yaml:"delimiter"`
	// TargetIndex は目的属性の位置。負の値は末尾から数える
	TargetIndex int `yaml:"target_index"`
	// Scale は読み込み後にデータセットを min-max 正規化するか
	Scale bool `yaml:"scale"`
	// LogLevel は debug / info / warn / error
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration matching the library defaults
func Default() *Config {
	return &Config{
		Folds:       10,
		Seed:        1,
		TargetIndex: -1,
		LogLevel:    "info",
	}
}

// Load reads and validates a YAML configuration file.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(raw)
}

// Parse decodes YAML on top of Default and validates the result
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Folds < 2 {
		return errors.NewValidationError("folds", "need at least 2 folds", c.Folds)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return l
}
