package config

import "github.com/spf13/viper"

// Config holds the runtime settings. Everything has a default; any value
// can be overridden through a local config.yaml or a SCENTBOARD_* env var
// (e.g. SCENTBOARD_DATASET_PATH).
type Config struct {
	DatasetPath    string `mapstructure:"dataset_path"`
	ListenAddr     string `mapstructure:"listen_addr"`
	TopRecords     int    `mapstructure:"top_records"`
	TopGroups      int    `mapstructure:"top_groups"`
	TopNotes       int    `mapstructure:"top_notes"`
	MinBrandSample int    `mapstructure:"min_brand_sample"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("dataset_path", "fra_cleaned.csv")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("top_records", 10)
	v.SetDefault("top_groups", 15)
	v.SetDefault("top_notes", 15)
	v.SetDefault("min_brand_sample", 5)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("scentboard")
	v.AutomaticEnv()

	// A missing config file is fine; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
