// Package mctsact is the action selection layer of a Monte Carlo tree search.
//
// Given a partially expanded tree, it picks the action to take from a node: UCT while searching,
// the most visited child once the search is over, or a uniformly random legal action for rollouts
// and baselines. The selectors themselves live in package mcts; this package wires them to a
// configuration, a logger and an evaluation harness.
package mctsact

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mctsact/mcts"
)

// ErrConfig is returned for configurations that fail validation.
var ErrConfig = errors.New("invalid config")

func DefaultConfig() Config {
	return Config{
		Name:     "mctsact",
		MCTSConf: mcts.DefaultConfig(),
		Rollouts: 32,
		LogLevel: zerolog.InfoLevel.String(),
	}
}

func (c Config) IsValid() bool {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return false
	}
	return c.MCTSConf.IsValid() && c.Workers >= 0 && c.Rollouts >= 0
}

// LoadConfig reads a YAML config file. Fields missing from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes a YAML config on top of DefaultConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&conf); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(ErrConfig, err.Error())
	}
	if !conf.IsValid() {
		return Config{}, errors.Wrapf(ErrConfig, "%+v", conf)
	}
	return conf, nil
}

// NewLogger builds a console logger at the configured level.
func NewLogger(conf Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Str("name", conf.Name).Logger()
}
