package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		Port int `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Generator defaults, used when a request or flag leaves them unset
	Generator struct {
		DefaultCount int   `env:"GENERATOR_COUNT" envDefault:"500"`
		DefaultSeed  int64 `env:"GENERATOR_SEED" envDefault:"42"`

		// Optional JSON file overriding the built-in city/type profiles
		ProfilePath string `env:"GENERATOR_PROFILE_PATH"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of properties per batch pushed to the queue
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	Output struct {
		DataDir      string `env:"OUTPUT_DATA_DIR" envDefault:"data"`
		DashboardDir string `env:"OUTPUT_DASHBOARD_DIR" envDefault:"dashboards"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
