// meta/meta.go
package meta

import (
	"time"

	"gomoku/game"
)

// BOARD_SIZE is the default board size for self-play.
const BOARD_SIZE = 9

// SAMPLES defines the number of candidate moves drawn per MCTS iteration.
const SAMPLES = 5

// PLAYOUTS defines the number of playouts run per candidate.
const PLAYOUTS = 50

// DURATION defines the default MCTS time budget per move.
const DURATION = time.Second

// TIME_LIMIT defines the default solver time limit per move, in seconds.
const TIME_LIMIT = 1

// GAMES defines the number of games per experiment match-up.
const GAMES = 10

// MAX_MOVES caps a self-play game; a full board ends it earlier.
const MAX_MOVES = game.MaxSize * game.MaxSize
