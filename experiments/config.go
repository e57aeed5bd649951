package experiments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"svplan/svp"
)

// ExperimentConfig mirrors the solver flags so a whole run can be
// pinned in a file and passed with --config.
type ExperimentConfig struct {
	Rate       float64 `yaml:"rate"`
	Discount   float64 `yaml:"discount"`
	Tolerance  float64 `yaml:"tolerance"`
	Iterations int     `yaml:"iterations"`
	Estimator  string  `yaml:"estimator"`
	Rank       int     `yaml:"rank"`
	Shrinkage  float64 `yaml:"shrinkage"`
	Workers    int     `yaml:"workers"`
	Seed       uint64  `yaml:"seed"`
}

func loadConfigFile(path string) (*ExperimentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &ExperimentConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// solverConfig folds the flag values and the optional config file into
// the solver configuration. File values win where they are set.
func solverConfig() (svp.Config, error) {
	cfg := svp.Config{
		ObservationRate: rate,
		Discount:        discount,
		Tolerance:       tolerance,
		MaxIterations:   iterations,
		Estimator:       estimator,
		Rank:            rank,
		Shrinkage:       shrinkage,
		Workers:         workers,
		Seed:            seed,
	}
	if configFile == "" {
		return cfg, nil
	}
	fileCfg, err := loadConfigFile(configFile)
	if err != nil {
		return cfg, err
	}
	if fileCfg.Rate != 0 {
		cfg.ObservationRate = fileCfg.Rate
	}
	if fileCfg.Discount != 0 {
		cfg.Discount = fileCfg.Discount
	}
	if fileCfg.Tolerance != 0 {
		cfg.Tolerance = fileCfg.Tolerance
	}
	if fileCfg.Iterations != 0 {
		cfg.MaxIterations = fileCfg.Iterations
	}
	if fileCfg.Estimator != "" {
		cfg.Estimator = fileCfg.Estimator
	}
	if fileCfg.Rank != 0 {
		cfg.Rank = fileCfg.Rank
	}
	if fileCfg.Shrinkage != 0 {
		cfg.Shrinkage = fileCfg.Shrinkage
	}
	if fileCfg.Workers != 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.Seed != 0 {
		cfg.Seed = fileCfg.Seed
	}
	return cfg, nil
}

func configPrintable(cfg svp.Config) []string {
	return []string{
		fmt.Sprintf("rate: %g", cfg.ObservationRate),
		fmt.Sprintf("discount: %g", cfg.Discount),
		fmt.Sprintf("tolerance: %g", cfg.Tolerance),
		fmt.Sprintf("iterations: %d", cfg.MaxIterations),
		fmt.Sprintf("estimator: %s", cfg.Estimator),
		fmt.Sprintf("rank: %d", cfg.Rank),
		fmt.Sprintf("shrinkage: %g", cfg.Shrinkage),
		fmt.Sprintf("seed: %d", cfg.Seed),
	}
}
