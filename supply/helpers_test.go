package supply

import "sync/atomic"

type countingSink struct {
	n atomic.Int64
}

func (s *countingSink) Write(string) { s.n.Add(1) }

func (s *countingSink) count() int64 { return s.n.Load() }
