package grapheme

import "sync"

// Handle is an opaque id for an interned cluster byte sequence.
type Handle uint32

// Pool interns the canonical byte sequences of multi-byte clusters so
// buffers can compare and hash clusters by a small handle. One pool is
// shared per process; entries are reference counted by buffer.
type Pool struct {
	mu      sync.Mutex
	index   map[string]Handle
	entries []poolEntry
}

type poolEntry struct {
	bytes  string
	widths [3]int16 // per Method, -1 = not yet computed
	refs   int32
}

var shared = NewPool()

// Shared returns the process-wide pool.
func Shared() *Pool { return shared }

func NewPool() *Pool {
	return &Pool{index: make(map[string]Handle)}
}

// Intern returns the handle for the given cluster bytes, adding an entry
// on first sight. Equal byte sequences share a handle. The new reference
// belongs to the caller.
func (p *Pool) Intern(cluster []byte) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.index[string(cluster)]; ok {
		p.entries[h].refs++
		return h
	}
	h := Handle(len(p.entries))
	p.entries = append(p.entries, poolEntry{
		bytes:  string(cluster),
		widths: [3]int16{-1, -1, -1},
		refs:   1,
	})
	p.index[p.entries[h].bytes] = h
	return h
}

// Lookup returns the canonical bytes and the cluster width under the
// given method. Widths are computed once per method and memoized.
func (p *Pool) Lookup(h Handle, method Method) (string, int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if int(h) >= len(p.entries) {
		return "", 0
	}
	e := &p.entries[h]
	if e.widths[method] < 0 {
		e.widths[method] = int16(clusterWidth([]byte(e.bytes), method, 0))
	}
	return e.bytes, int(e.widths[method])
}

// Retain adds a reference to an interned entry.
func (p *Pool) Retain(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(h) < len(p.entries) {
		p.entries[h].refs++
	}
}

// Release drops a reference. Entries keep their handle after hitting zero
// so outstanding handles never dangle; the byte payload is freed.
func (p *Pool) Release(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(h) >= len(p.entries) {
		return
	}
	e := &p.entries[h]
	e.refs--
	if e.refs <= 0 {
		delete(p.index, e.bytes)
		e.bytes = ""
		e.refs = 0
		e.widths = [3]int16{-1, -1, -1}
	}
}

// Len reports the number of live entries, for tests.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.entries {
		if e.refs > 0 {
			n++
		}
	}
	return n
}
