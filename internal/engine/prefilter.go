package engine

import (
	"context"

	"github.com/soyunomas/dedup/internal/hasher"
	"github.com/soyunomas/dedup/internal/scanner"
)

type quickKey struct {
	size int64
	head uint64
}

// prefilter descarta candidatos que no pueden tener duplicado:
// tamaño único o primer bloque (4KB) único. Devuelve los que siguen
// en carrera y los que fallaron en lectura (política Skip).
func (r *Runner) prefilter(ctx context.Context, cands []scanner.Candidate) ([]scanner.Candidate, []scanner.Candidate, error) {
	// Agrupar por tamaño
	bySize := make(map[int64]int, len(cands))
	for _, c := range cands {
		bySize[c.Size]++
	}
	var sized []scanner.Candidate
	for _, c := range cands {
		if bySize[c.Size] > 1 {
			sized = append(sized, c)
		}
	}
	r.log.Debug().Int("candidates", len(sized)).Msg("candidatos por tamaño")
	if len(sized) == 0 {
		return nil, nil, nil
	}

	// Pre-hash del primer bloque
	results := fanOut(ctx, r.opts.Workers, sized, func(c scanner.Candidate) (uint64, error) {
		return hasher.HashFirstBlock(c.Path)
	})

	byHead := make(map[quickKey][]scanner.Candidate)
	skipped, err := collect(r, "pre-hash", results, len(sized), func(c scanner.Candidate, head uint64) {
		k := quickKey{size: c.Size, head: head}
		byHead[k] = append(byHead[k], c)
	})
	if err != nil {
		return nil, nil, err
	}

	var kept []scanner.Candidate
	for _, group := range byHead {
		if len(group) > 1 {
			kept = append(kept, group...)
		}
	}
	return kept, skipped, nil
}
