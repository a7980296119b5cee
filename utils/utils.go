package utils

import (
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	BaseURL string
}

type GameConfig struct {
	ID    int64
	Debug bool
}

type SyncConfig struct {
	IntervalSeconds int
}

type BridgeConfig struct {
	Addr string
}

type ResolutionConfig struct {
	X, Y int
}

type UIConfig struct {
	Resolution ResolutionConfig
}

type Config struct {
	Server ServerConfig
	Game   GameConfig
	Sync   SyncConfig
	Bridge BridgeConfig
	UI     UIConfig
}

func ReadTOML(fileName string) (*Config, error) {
	file, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := toml.Unmarshal(file, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func AlmostEqual(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}
