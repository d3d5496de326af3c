package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is a saved metronome preset.
type Config struct {
	Key          string `json:"key"`
	Tempo        int64  `json:"tempo"`
	Timesig      string `json:"timesig"`
	Subdivisions int    `json:"subdivisions,omitempty"`
}

// Validate checks the preset can drive a metronome.
func (c Config) Validate() error {
	if c.Key == "" {
		return errors.New("preset key cannot be empty")
	}
	if !ValidTempo(c.Tempo) {
		return errors.Errorf("tempo %v is not between %v and %v", c.Tempo, MIN_TEMPO, MAX_TEMPO)
	}
	meter, err := ParseMeter(c.Timesig)
	if err != nil {
		return err
	}
	_, err = meter.Signature(c.subdivisions())
	return err
}

func (c Config) subdivisions() int {
	if c.Subdivisions == 0 {
		return DEFAULT_SUBDIVISIONS
	}
	return c.Subdivisions
}

type ConfigManager struct {
	Config     []Config
	ConfigPath string
	File       *os.File
	FileInfo   os.FileInfo
}

func DefaultConfigPath() string {
	return UserHomeDir() + ".clack.json"
}

func NewConfigManager(filePath string) (*ConfigManager, error) {
	f, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}

	fileInfo, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "stat config")
	}

	return &ConfigManager{
		File:       f,
		ConfigPath: filePath,
		FileInfo:   fileInfo,
		Config:     []Config{},
	}, nil
}

func (cm *ConfigManager) IsFileNotEmpty() bool {
	return cm.FileInfo.Size() > 0
}

func (cm *ConfigManager) LoadConfig() error {
	if cm.IsFileNotEmpty() {
		if err := json.NewDecoder(cm.File).Decode(&cm.Config); err != nil {
			return errors.Wrapf(err, "decode %v", cm.ConfigPath)
		}
	}
	return nil
}

func (cm *ConfigManager) GetConfigByKey(key string) *Config {
	for i := range cm.Config {
		if cm.Config[i].Key == key {
			return &cm.Config[i]
		}
	}
	return nil
}

func (cm *ConfigManager) WriteConfig() error {
	newConf, err := json.Marshal(cm.Config)
	if err != nil {
		return err
	}

	return errors.Wrap(os.WriteFile(cm.ConfigPath, newConf, 0644), "write config")
}

func initConfigManager(path string) (*ConfigManager, error) {
	cm, err := NewConfigManager(path)
	if err != nil {
		return nil, err
	}
	defer cm.File.Close()

	err = cm.LoadConfig()
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func CreateConf(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cm, err := initConfigManager(path)
	if err != nil {
		return err
	}

	if cm.GetConfigByKey(cfg.Key) != nil {
		return errors.Errorf("`%v` config already exists", cfg.Key)
	}

	cm.Config = append(cm.Config, cfg)
	return cm.WriteConfig()
}

func DeleteConfig(path string, key string) error {
	cm, err := initConfigManager(path)
	if err != nil {
		return err
	}

	if cm.GetConfigByKey(key) == nil {
		return errors.Errorf("`%v` config not found", key)
	}

	kept := cm.Config[:0]
	for _, config := range cm.Config {
		if config.Key != key {
			kept = append(kept, config)
		}
	}
	cm.Config = kept

	return cm.WriteConfig()
}

// GetConfig returns the preset stored under key.
func GetConfig(path string, key string) (Config, error) {
	cm, err := initConfigManager(path)
	if err != nil {
		return Config{}, err
	}

	c := cm.GetConfigByKey(key)
	if c == nil {
		return Config{}, errors.Errorf("`%v` config not found", key)
	}
	return *c, nil
}

func ListConfigs(path string) ([]Config, error) {
	cm, err := initConfigManager(path)
	if err != nil {
		return nil, err
	}
	return cm.Config, nil
}
