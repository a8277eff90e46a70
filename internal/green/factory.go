package green

import (
	"sync"
	"sync/atomic"

	"pdfsyntax/internal/diag"
	"pdfsyntax/internal/token"
)

// Factory creates green nodes for one session. It interns diagnostic-free
// tokens whose trivia are absent or shared, and routes small structural
// nodes through its Cache. A Factory is safe for concurrent use.
type Factory struct {
	cache    *Cache
	tokens   sync.Map // tokenKey -> *Token
	interned atomic.Uint64
}

// maxInternedText bounds the text of interned tokens; stream data and long
// strings are rarely repeated.
const maxInternedText = 64

type tokenKey struct {
	kind     token.Kind
	text     string
	leading  *Trivia
	trailing *Trivia
}

// NewFactory returns a factory using cache; nil disables node caching.
func NewFactory(cache *Cache) *Factory {
	return &Factory{cache: cache}
}

func (f *Factory) Cache() *Cache { return f.cache }

// Interned reports how many token requests were served from the intern table.
func (f *Factory) Interned() uint64 { return f.interned.Load() }

// Trivia returns the shared instance for common text, else a new node.
func (f *Factory) Trivia(kind token.Kind, text string) *Trivia {
	if t := SharedTrivia(kind, text); t != nil {
		return t
	}
	return NewTrivia(kind, text)
}

// TriviaList wraps trivia pieces into a single trivia node.
func (f *Factory) TriviaList(items []*Trivia) Node {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	nodes := make([]Node, len(items))
	for i, t := range items {
		nodes[i] = t
	}
	return List(nodes...)
}

// Token builds or reuses a token.
func (f *Factory) Token(kind token.Kind, text string, value token.Value, leading, trailing Node, diags []diag.Info) *Token {
	key, ok := internKey(kind, text, leading, trailing, diags)
	if !ok {
		return NewToken(kind, text, value, leading, trailing, diags)
	}
	if t, hit := f.tokens.Load(key); hit {
		f.interned.Add(1)
		return t.(*Token)
	}
	t := NewToken(kind, text, value, leading, trailing, nil)
	actual, loaded := f.tokens.LoadOrStore(key, t)
	if loaded {
		f.interned.Add(1)
	}
	return actual.(*Token)
}

func internKey(kind token.Kind, text string, leading, trailing Node, diags []diag.Info) (tokenKey, bool) {
	if len(diags) != 0 || len(text) > maxInternedText || kind == token.StreamDataToken {
		return tokenKey{}, false
	}
	lead, ok := sharedOrNil(leading)
	if !ok {
		return tokenKey{}, false
	}
	trail, ok := sharedOrNil(trailing)
	if !ok {
		return tokenKey{}, false
	}
	return tokenKey{kind: kind, text: text, leading: lead, trailing: trail}, true
}

func sharedOrNil(n Node) (*Trivia, bool) {
	if n == nil {
		return nil, true
	}
	t, ok := n.(*Trivia)
	if !ok || !IsShared(t) {
		return nil, false
	}
	return t, true
}

// Missing builds a zero-width token for error recovery.
func (f *Factory) Missing(kind token.Kind, diags ...diag.Info) *Token {
	return MissingToken(kind, diags)
}

// List builds a list, reusing a cached one for up to three children.
func (f *Factory) List(children ...Node) Node {
	kids := compact(children)
	if len(kids) < 2 || len(kids) > maxCachedSlots {
		return List(kids...)
	}
	if n, h := f.cache.TryGetNode(token.List, kids...); n != nil {
		return n
	} else if h != 0 {
		l := List(kids...)
		f.cache.AddNode(l, h)
		return l
	}
	return List(kids...)
}

// Node builds a production, reusing a cached one when possible.
func (f *Factory) Node(kind token.Kind, slots ...Node) Node {
	n, h := f.cache.TryGetNode(kind, slots...)
	if n != nil {
		return n
	}
	n = NewNode(kind, slots...)
	f.cache.AddNode(n, h)
	return n
}
