package mctsact

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		conf := DefaultConfig()
		require.True(t, conf.IsValid())
		require.Equal(t, float32(math32.Sqrt2), conf.MCTSConf.ExplorationConstant)
	})

	t.Run("decode overrides only what is given", func(t *testing.T) {
		conf, err := DecodeConfig(strings.NewReader(`
name: test
workers: 4
mcts_conf:
  exploration_constant: 0.5
`))
		require.NoError(t, err)
		require.Equal(t, "test", conf.Name)
		require.Equal(t, 4, conf.Workers)
		require.Equal(t, float32(0.5), conf.MCTSConf.ExplorationConstant)
		require.Equal(t, DefaultConfig().MCTSConf.Eps, conf.MCTSConf.Eps)
		require.Equal(t, "info", conf.LogLevel)
	})

	t.Run("empty document", func(t *testing.T) {
		conf, err := DecodeConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), conf)
	})

	invalid := map[string]string{
		"negative exploration": "mcts_conf: {exploration_constant: -1}",
		"negative eps":         "mcts_conf: {eps: -0.1}",
		"zero eps":             "mcts_conf: {eps: 0}",
		"negative workers":     "workers: -2",
		"unknown level":        "log_level: loud",
		"not yaml":             "workers: [",
	}
	for name, doc := range invalid {
		doc := doc
		t.Run(name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrConfig)
		})
	}

	t.Run("load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf.yaml")
		require.NoError(t, os.WriteFile(path, []byte("seed: 99\nlog_level: debug\n"), 0644))
		conf, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, uint64(99), conf.Seed)
		require.Equal(t, "debug", conf.LogLevel)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestMode(t *testing.T) {
	for _, m := range []Mode{Random, UCT, Greedy} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	got, err := ParseMode(" UCT ")
	require.NoError(t, err)
	require.Equal(t, UCT, got)

	_, err = ParseMode("puct")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	conf := DefaultConfig()
	conf.LogLevel = "warn"
	logger := NewLogger(conf, &buf)
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
