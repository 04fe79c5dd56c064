package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("subcommands registered", func(t *testing.T) {
		names := make(map[string]bool)
		for _, c := range rootCmd.Commands() {
			names[c.Name()] = true
		}
		assert.True(t, names["build"])
		assert.True(t, names["merge"])
		assert.True(t, names["version"])
	})

	t.Run("version set", func(t *testing.T) {
		assert.NotEmpty(t, rootCmd.Version)
	})
}

func TestBuildCmdFlags(t *testing.T) {
	for _, name := range []string{"output", "concurrency", "force", "no-cache", "dry-run", "no-progress"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, buildCmd.Flags().Lookup(name), "flag %s missing", name)
		})
	}
}

func TestMergeCmdArgs(t *testing.T) {
	require.NotNil(t, mergeCmd.Args)
	assert.Error(t, mergeCmd.Args(mergeCmd, nil))
	assert.NoError(t, mergeCmd.Args(mergeCmd, []string{"a.json"}))
}

func TestInitConfig(t *testing.T) {
	t.Run("config file specified", func(t *testing.T) {
		cfgFile = "/test/config.yaml"
		assert.NotPanics(t, initConfig)
	})

	t.Run("no config file", func(t *testing.T) {
		cfgFile = ""
		assert.NotPanics(t, initConfig)
	})
}
