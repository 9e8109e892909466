package domain

import (
	"strconv"
	"strings"
)

// Slugify lower-cases s and collapses every run of characters outside
// [a-z0-9] into a single dash, trimming dashes at either end.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// SlugAllocator hands out unique slugs within one content type.
// The first claim of a slug keeps it; later claims get -2, -3, ...
type SlugAllocator struct {
	used map[string]bool
	next map[string]int
}

// NewSlugAllocator creates an empty allocator.
func NewSlugAllocator() *SlugAllocator {
	return &SlugAllocator{
		used: make(map[string]bool),
		next: make(map[string]int),
	}
}

// Allocate returns a unique slug for base and whether it had to be suffixed.
func (a *SlugAllocator) Allocate(base string) (string, bool) {
	if !a.used[base] {
		a.used[base] = true
		return base, false
	}

	n := a.next[base]
	if n < 2 {
		n = 2
	}
	for {
		candidate := base + "-" + strconv.Itoa(n)
		n++
		if !a.used[candidate] {
			a.next[base] = n
			a.used[candidate] = true
			return candidate, true
		}
	}
}
