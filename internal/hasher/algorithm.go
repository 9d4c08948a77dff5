package hasher

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"lukechampine.com/blake3"
)

// Algorithm identifica la función de hash de contenido.
type Algorithm string

const (
	Blake3 Algorithm = "blake3" // Default
	SHA256 Algorithm = "sha256"
	XXH64  Algorithm = "xxh64" // Rápido, no criptográfico
)

// ErrUnknownAlgorithm se devuelve para nombres no soportados.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

var digestPools = map[Algorithm]*sync.Pool{
	Blake3: {New: func() any { return blake3.New(32, nil) }},
	SHA256: {New: func() any { return sha256.New() }},
	XXH64:  {New: func() any { return hash.Hash(xxhash.New()) }},
}

// ParseAlgorithm valida el nombre. Vacío significa Blake3.
func ParseAlgorithm(s string) (Algorithm, error) {
	algo := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if algo == "" {
		return Blake3, nil
	}
	if _, ok := digestPools[algo]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return algo, nil
}

// HexLen es la longitud del digest hexadecimal del algoritmo.
func (a Algorithm) HexLen() int {
	switch a {
	case XXH64:
		return 16
	default:
		return 64
	}
}

func digestPool(algo Algorithm) (*sync.Pool, error) {
	if algo == "" {
		algo = Blake3
	}
	pool, ok := digestPools[algo]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(algo))
	}
	return pool, nil
}
