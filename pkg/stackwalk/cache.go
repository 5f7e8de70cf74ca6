package stackwalk

import (
	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
)

type symbolResult struct {
	name         string
	displacement uint64
	ok           bool
}

// cachedUnwinder memoises symbol lookups; a looping stack revisits the same
// return addresses on every cycle.
type cachedUnwinder struct {
	Unwinder
	symbols *lru.Cache
}

func newCachedUnwinder(u Unwinder, logger *log.Entry) Unwinder {
	cache, err := lru.New(MaxFrames)
	if err != nil {
		logger.WithError(err).Debug("Symbol cache disabled")
		return u
	}
	return &cachedUnwinder{Unwinder: u, symbols: cache}
}

func (c *cachedUnwinder) Symbol(pc uint64) (string, uint64, bool) {
	if v, ok := c.symbols.Get(pc); ok {
		r := v.(symbolResult)
		return r.name, r.displacement, r.ok
	}
	name, disp, ok := c.Unwinder.Symbol(pc)
	c.symbols.Add(pc, symbolResult{name: name, displacement: disp, ok: ok})
	return name, disp, ok
}
