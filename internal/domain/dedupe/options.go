package dedupe

import "github.com/okian/arena/internal/domain/model"

// Option applies a configuration option to the latest-wins deduper.
type Option func(*latestWins)

// WithCapacity preallocates room for n distinct names.
func WithCapacity(n int) Option {
	return func(d *latestWins) {
		if n > 0 {
			d.index = make(map[string]int, n)
			d.players = make([]model.Player, 0, n)
		}
	}
}
