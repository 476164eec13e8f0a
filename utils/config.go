package utils

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ethpandaops/frenscan/config"
	"github.com/ethpandaops/frenscan/types"
)

// ReadConfig will process a configuration.
// Unset values in the file at path fall back to the embedded defaults,
// environment variables override both. The frens file is loaded separately
// with LoadFrensFile.
func ReadConfig(cfg *types.Config, path string) error {
	err := readConfigFile(cfg, path)
	if err != nil {
		return err
	}

	defaults := &types.Config{}
	err = yaml.Unmarshal([]byte(config.DefaultConfigYml), defaults)
	if err != nil {
		return errors.Wrap(err, "error decoding default config")
	}

	err = mergo.Merge(cfg, defaults)
	if err != nil {
		return errors.Wrap(err, "error merging default config")
	}

	err = readConfigEnv(cfg)
	if err != nil {
		return errors.Wrap(err, "error reading config from environment")
	}

	if cfg.Extraction.Workers < 1 {
		cfg.Extraction.Workers = 1
	}

	return nil
}

// LoadFrensFile loads the frens file referenced by the config, if any.
func LoadFrensFile(cfg *types.Config) error {
	if cfg.Frens.FilePath == "" {
		return nil
	}

	frensFile, err := ReadFrensFile(cfg.Frens.FilePath)
	if err != nil {
		return err
	}
	cfg.Frens.File = frensFile
	return nil
}

func readConfigFile(cfg *types.Config, path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %v: %v", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("error decoding config file %v: %v", path, err)
	}

	return nil
}

func readConfigEnv(cfg *types.Config) error {
	return envconfig.Process("", cfg)
}

// ReadFrensFile loads the treasury accounts / issued tokens file.
func ReadFrensFile(path string) (*types.FrensFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open frens file %v", path)
	}
	defer f.Close()

	frensFile := &types.FrensFile{}
	err = yaml.NewDecoder(f).Decode(frensFile)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode frens file %v", path)
	}

	return frensFile, nil
}

// ParseFrensFile decodes frens file content.
func ParseFrensFile(data []byte) (*types.FrensFile, error) {
	frensFile := &types.FrensFile{}
	if err := yaml.Unmarshal(data, frensFile); err != nil {
		return nil, errors.Wrap(err, "could not decode frens file")
	}
	return frensFile, nil
}
