package domain

import "time"

// Listable is implemented by documents that appear in public listings.
type Listable interface {
	SortKey() (featured bool, order int, createdAt time.Time)
}

func (s *Stack) SortKey() (bool, int, time.Time) { return s.Featured, s.Order, s.CreatedAt }
func (w *Work) SortKey() (bool, int, time.Time)  { return w.Featured, w.Order, w.CreatedAt }

// PublicLess orders featured first, then by ascending order, then newest first.
func PublicLess(a, b Listable) bool {
	af, ao, ac := a.SortKey()
	bf, bo, bc := b.SortKey()
	if af != bf {
		return af
	}
	if ao != bo {
		return ao < bo
	}
	return ac.After(bc)
}

// RecentLess orders newest first.
func RecentLess(a, b Listable) bool {
	_, _, ac := a.SortKey()
	_, _, bc := b.SortKey()
	return ac.After(bc)
}
