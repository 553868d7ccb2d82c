package config

import (
	"github.com/gaze-network/ordinals-indexer/internal/postgres"
)

type Config struct {
	// Database to store indexed ordinals data. Currently only "postgres" is supported.
	Database string `mapstructure:"database"`

	Postgres postgres.Config `mapstructure:"postgres"`

	// Datasource to fetch block data from. Currently only "bitcoin-node" is supported.
	Datasource string `mapstructure:"datasource"`

	// APIHandlers to enable. Currently only "http" is supported.
	APIHandlers []string `mapstructure:"api_handlers"`

	// MaxReorgLookBack is the maximum rewind depth when fixing a chain
	// reorganization. Exceeding it is fatal and requires operator
	// intervention. Zero uses the indexer default.
	MaxReorgLookBack int `mapstructure:"max_reorg_look_back"`

	// HeightLimit stops indexing above this block height. Zero means no limit.
	HeightLimit int64 `mapstructure:"height_limit"`
}
