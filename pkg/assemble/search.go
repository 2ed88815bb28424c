package assemble

import (
	"context"
	stderrors "errors"
)

// errAbandoned stops a parallel branch that can no longer win.
var errAbandoned = stderrors.New("branch abandoned")

// search is the mutable arena of one search branch. Nothing outside the
// branch holds a reference to placed or used.
type search struct {
	a         *Assembler
	ctx       context.Context
	abandoned func() bool

	placed []int
	used   map[uint64]bool
	stats  Stats
}

func (s *search) push(i int) {
	s.placed = append(s.placed, i)
	s.used[s.a.variants[i].ID] = true
	s.stats.MaxDepth = max(s.stats.MaxDepth, len(s.placed))
}

func (s *search) pop() {
	last := s.placed[len(s.placed)-1]
	s.placed = s.placed[:len(s.placed)-1]
	delete(s.used, s.a.variants[last].ID)
}

// seed places variants[i] in the first cell and extends from there. The
// arena is empty again when seed returns false.
func (s *search) seed(i int) (bool, error) {
	s.stats.Seeds++
	s.push(i)
	ok, err := s.extend()
	if err != nil {
		if err == errAbandoned {
			return false, nil
		}
		return false, err
	}
	if ok {
		return true, nil
	}
	s.pop()
	return false, nil
}

func (s *search) extend() (bool, error) {
	s.stats.Calls++
	if s.stats.Calls%cancelCheckInterval == 1 {
		if err := s.ctx.Err(); err != nil {
			return false, err
		}
		if s.abandoned != nil && s.abandoned() {
			return false, errAbandoned
		}
	}

	w := s.a.width
	i := len(s.placed)
	if i == w*w {
		return true, nil
	}

	for _, c := range s.candidates(i) {
		if s.used[s.a.variants[c].ID] {
			continue
		}
		s.push(c)
		ok, err := s.extend()
		if err != nil || ok {
			return ok, err
		}
		s.pop()
		s.stats.Backtracks++
	}
	return false, nil
}

// candidates returns the index bucket for cell i (i > 0).
func (s *search) candidates(i int) []int {
	w := s.a.width
	vs := s.a.variants
	switch {
	case i%w == 0:
		return s.a.index.Top(vs[s.placed[i-w]].Bottom)
	case i < w:
		return s.a.index.Left(vs[s.placed[i-1]].Right)
	default:
		return s.a.index.TopLeft(vs[s.placed[i-w]].Bottom, vs[s.placed[i-1]].Right)
	}
}

func (s *search) result() []int {
	out := make([]int, len(s.placed))
	copy(out, s.placed)
	return out
}
