package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Key: "practice", Tempo: 90, Timesig: "3/4"}},
		{name: "valid with subdivisions", cfg: Config{Key: "swing", Tempo: 140, Timesig: "4/4", Subdivisions: 3}},
		{name: "empty key", cfg: Config{Tempo: 90, Timesig: "3/4"}, wantErr: true},
		{name: "bad tempo", cfg: Config{Key: "k", Tempo: 0, Timesig: "3/4"}, wantErr: true},
		{name: "bad timesig", cfg: Config{Key: "k", Tempo: 90, Timesig: "3-4"}, wantErr: true},
		{name: "bad subdivisions", cfg: Config{Key: "k", Tempo: 90, Timesig: "3/4", Subdivisions: -2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigManager_Presets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clack.json")

	configs, err := ListConfigs(path)
	require.NoError(t, err)
	assert.Empty(t, configs)

	require.NoError(t, CreateConf(path, Config{Key: "waltz", Tempo: 90, Timesig: "3/4"}))
	require.NoError(t, CreateConf(path, Config{Key: "jig", Tempo: 110, Timesig: "6/8", Subdivisions: 2}))

	err = CreateConf(path, Config{Key: "waltz", Tempo: 100, Timesig: "3/4"})
	assert.ErrorContains(t, err, "already exists")

	waltz, err := GetConfig(path, "waltz")
	require.NoError(t, err)
	assert.Equal(t, int64(90), waltz.Tempo)
	assert.Equal(t, DEFAULT_SUBDIVISIONS, waltz.subdivisions())

	jig, err := GetConfig(path, "jig")
	require.NoError(t, err)
	assert.Equal(t, 2, jig.subdivisions())

	require.NoError(t, DeleteConfig(path, "waltz"))
	_, err = GetConfig(path, "waltz")
	assert.ErrorContains(t, err, "not found")
	assert.ErrorContains(t, DeleteConfig(path, "waltz"), "not found")

	configs, err = ListConfigs(path)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "jig", configs[0].Key)
}

func TestConfigManager_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clack.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := ListConfigs(path)
	assert.ErrorContains(t, err, "decode")
}
