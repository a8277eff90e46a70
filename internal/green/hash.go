package green

import "pdfsyntax/internal/token"

// FNV-1a constants; words are mixed one at a time.
const (
	hashOffset uint64 = 14695981039346656037
	hashPrime  uint64 = 1099511628211
)

func mix(h, v uint64) uint64 {
	h ^= v
	h *= hashPrime
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= hashPrime
	}
	return h
}

// finish never returns 0: zero means "not cacheable" to the Cache.
func finish(h uint64) uint64 {
	return h | 1
}

func hashChild(n Node) uint64 {
	if n == nil {
		return 0
	}
	return n.Hash()
}

// structuralHash is the hash of a node of kind with the given children.
// Production and list constructors and Cache.TryGetNode must agree on it.
func structuralHash(kind token.Kind, children []Node) uint64 {
	h := mix(hashOffset, uint64(kind))
	h = mix(h, uint64(len(children)))
	for _, c := range children {
		h = mix(h, hashChild(c))
	}
	return finish(h)
}
