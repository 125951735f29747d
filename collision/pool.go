package collision

import "sync"

// scratch holds the per-query buffers used to gather candidate triangles.
type scratch struct {
	ids  []int32
	seen map[int32]struct{}
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			ids:  make([]int32, 0, 32),
			seen: make(map[int32]struct{}, 32),
		}
	},
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	s.ids = s.ids[:0]
	clear(s.seen)
	scratchPool.Put(s)
}
