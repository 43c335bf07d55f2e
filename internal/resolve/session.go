package resolve

import (
	"sort"
	"strconv"
	"sync"
)

// Session accumulates the cross-cutting state of one resolution pass:
// Strong's numbers discovered during markup translation and the canonical
// references that resolved. It is scoped to a single ResolveFiles call so
// concurrent passes cannot cross-contaminate; writes are safe from
// concurrent directive workers, reads happen after the pass completes.
type Session struct {
	mu      sync.Mutex
	strongs map[string]struct{}
	refs    map[string]struct{}
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		strongs: make(map[string]struct{}),
		refs:    make(map[string]struct{}),
	}
}

// AddStrongs records Strong's numbers discovered in provider markup.
func (s *Session) AddStrongs(nums ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range nums {
		s.strongs[n] = struct{}{}
	}
}

// AddReference records a resolved canonical reference.
func (s *Session) AddReference(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs[ref] = struct{}{}
}

// Strongs returns the collected Strong's numbers sorted numerically.
func (s *Session) Strongs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.strongs))
	for n := range s.strongs {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i])
		b, _ := strconv.Atoi(out[j])
		return a < b
	})
	return out
}

// References returns the collected canonical references sorted for stable
// appendix ordering.
func (s *Session) References() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.refs))
	for r := range s.refs {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
