package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
)

// JSONRepo is our repo implementation for a flat json file
type JSONRepo struct {
	configPath string
	mux        sync.Mutex
}

// NewJSONRepo returns a new repo for the json file at configPath
func NewJSONRepo(configPath string) *JSONRepo {
	return &JSONRepo{
		configPath: configPath,
		mux:        sync.Mutex{},
	}
}

// Load reads the config file. A missing file results in the default
// configuration, which is written out so users have something to edit.
func (r *JSONRepo) Load() (*Config, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	conf, err := r.load()

	if errors.Is(err, os.ErrNotExist) {
		conf = Default()

		if err := r.write(conf); err != nil {
			return nil, err
		}

		return conf, nil
	}

	if err != nil {
		return nil, err
	}

	return WithDefaults(conf)
}

// Save overwrites the config file with conf
func (r *JSONRepo) Save(conf *Config) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	return r.write(conf)
}

func (r *JSONRepo) write(conf *Config) error {
	file, err := os.OpenFile(r.configPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)

	if err != nil {
		return err
	}

	defer file.Close()

	data, err := json.MarshalIndent(conf, "", "    ")

	if err != nil {
		return err
	}

	_, err = file.Write(data)

	return err
}

func (r *JSONRepo) load() (*Config, error) {
	file, err := os.Open(r.configPath)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	conf := &Config{}

	if err := json.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	return conf, nil
}
