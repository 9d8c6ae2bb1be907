package config

import "gomoku/meta"

func DefaultConfig() Config {
	return Config{
		BoardSize:  meta.BOARD_SIZE,
		TimeLimit:  meta.TIME_LIMIT,
		Duration:   int(meta.DURATION.Milliseconds()),
		Samples:    meta.SAMPLES,
		Playouts:   meta.PLAYOUTS,
		Policy:     "random",
		Goroutines: 1,
		Games:      meta.GAMES,
		LogLevel:   "info",
	}
}
