package ownership

import "sync"

// ErrorSink collects error messages across a whole traversal. Branches expand
// concurrently, so appends are mutex-guarded; order is the order branches
// reported, which is what the response contract asks for (encounter order,
// not sorted).
type ErrorSink struct {
	mu   sync.Mutex
	msgs []string
}

func NewErrorSink() *ErrorSink {
	return &ErrorSink{}
}

// Append records one error message.
func (s *ErrorSink) Append(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

// Messages returns a copy of the collected messages. Never nil, so the
// response serializes as [] rather than null.
func (s *ErrorSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Visited is the branch-local set of company numbers already expanded on the
// path from the root to the current node. Each recursive call receives its own
// clone, so sibling branches never share cycle-detection state.
type Visited map[string]struct{}

func NewVisited() Visited {
	return make(Visited)
}

func (v Visited) Has(companyNumber string) bool {
	_, ok := v[companyNumber]
	return ok
}

func (v Visited) Add(companyNumber string) {
	v[companyNumber] = struct{}{}
}

// Clone copies the set for a child branch.
func (v Visited) Clone() Visited {
	out := make(Visited, len(v))
	for k := range v {
		out[k] = struct{}{}
	}
	return out
}
