package testbed

import (
	"sync"

	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/systems"
)

type pageKey struct {
	number int
	width  int
	height int
	spread bool
}

// PageCache keeps painted pages around the current one. Pages that are
// about to be needed are painted ahead on the job system.
type PageCache struct {
	painter *PagePainter
	jobs    *systems.JobSystem
	limit   int

	mutex   sync.Mutex
	pages   map[pageKey]*metadata.PixelBuffer
	pending map[pageKey]bool
	hits    int
	misses  int
}

func NewPageCache(painter *PagePainter, jobs *systems.JobSystem, limit int) *PageCache {
	return &PageCache{
		painter: painter,
		jobs:    jobs,
		limit:   max(limit, 1),
		pages:   make(map[pageKey]*metadata.PixelBuffer),
		pending: make(map[pageKey]bool),
	}
}

// Get returns page number, painting it on the caller when it is not
// cached yet.
func (c *PageCache) Get(number, width, height int, spread bool) *metadata.PixelBuffer {
	key := pageKey{number: number, width: width, height: height, spread: spread}
	c.mutex.Lock()
	if pb, ok := c.pages[key]; ok {
		c.hits++
		c.mutex.Unlock()
		return pb
	}
	c.misses++
	c.mutex.Unlock()

	pb := c.painter.Paint(number, width, height, spread)
	c.store(key, pb)
	return pb
}

// Prefetch paints the given pages in the background. Pages already
// cached or queued are skipped, and nothing is queued without a job
// system.
func (c *PageCache) Prefetch(numbers []int, width, height int, spread bool) {
	if c.jobs == nil {
		return
	}
	for _, n := range numbers {
		key := pageKey{number: n, width: width, height: height, spread: spread}
		c.mutex.Lock()
		_, cached := c.pages[key]
		if cached || c.pending[key] {
			c.mutex.Unlock()
			continue
		}
		c.pending[key] = true
		c.mutex.Unlock()

		queued := c.jobs.AddWorkNonBlocking(systems.JobTask{
			Name: "paint-page",
			Run: func() (interface{}, error) {
				return c.painter.Paint(key.number, key.width, key.height, key.spread), nil
			},
			OnComplete: func(result interface{}) {
				c.store(key, result.(*metadata.PixelBuffer))
			},
			OnCompletionCallback: func() {
				c.mutex.Lock()
				delete(c.pending, key)
				c.mutex.Unlock()
			},
		})
		if !queued {
			c.mutex.Lock()
			delete(c.pending, key)
			c.mutex.Unlock()
		}
	}
}

func (c *PageCache) store(key pageKey, pb *metadata.PixelBuffer) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.pages[key] = pb
	c.evict(key.number)
}

// evict drops the pages farthest from number until the cache fits.
func (c *PageCache) evict(number int) {
	for len(c.pages) > c.limit {
		var far pageKey
		farDist := -1
		for k := range c.pages {
			d := k.number - number
			if d < 0 {
				d = -d
			}
			if d > farDist {
				far, farDist = k, d
			}
		}
		delete(c.pages, far)
	}
}

// Reset forgets every page, after the page size changed.
func (c *PageCache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.pages = make(map[pageKey]*metadata.PixelBuffer)
}

func (c *PageCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.pages)
}

// Stats returns the cache hits and misses of Get.
func (c *PageCache) Stats() (int, int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hits, c.misses
}
