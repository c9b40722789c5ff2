package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chop-dbhi/icf-assist/internal/icf"
)

var (
	configFile string = getEnv("CONFIG_FILE", "config.json")
)

const (
	defaultRequestsPerMinute = 60
	defaultBurst             = 5
	defaultBatchConcurrency  = 4
)

func defaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			RequestsPerMinute: defaultRequestsPerMinute,
			Burst:             defaultBurst,
			BatchConcurrency:  defaultBatchConcurrency,
		},
	}
}

func readConfig() (*Config, error) {
	config := defaultConfig()

	// The config file is optional, defaults apply when it is missing
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse JSON data over the defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", configFile, err)
	}

	if config.LLM.BatchConcurrency <= 0 {
		config.LLM.BatchConcurrency = defaultBatchConcurrency
	}

	return config, nil
}

func readKeywordTable(path string) (icf.KeywordTable, error) {
	if path == "" {
		return icf.DefaultKeywordTable(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening keyword table: %w", err)
	}
	defer f.Close()

	return icf.LoadKeywordTable(f)
}

func readInterventionLibrary(path string) (*icf.InterventionLibrary, error) {
	library, err := icf.DefaultInterventionLibrary()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return library, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening activity examples: %w", err)
	}
	defer f.Close()

	activities, err := icf.LoadActivities(f)
	if err != nil {
		return nil, err
	}
	return library.WithActivities(activities), nil
}

// Loads reference tables and the LLM client into package state
func loadResources(config *Config) error {
	var err error

	keywordTable, err = readKeywordTable(config.KeywordTableFile)
	if err != nil {
		return err
	}

	interventionLibrary, err = readInterventionLibrary(config.ActivitiesFile)
	if err != nil {
		return err
	}

	llm = newLLMClient(config.LLM)
	batchConcurrency = config.LLM.BatchConcurrency
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
