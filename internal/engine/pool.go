package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/soyunomas/dedup/internal/entities"
	"github.com/soyunomas/dedup/internal/hasher"
	"github.com/soyunomas/dedup/internal/scanner"
)

type result[T any] struct {
	cand scanner.Candidate
	val  T
	err  error
}

// fanOut reparte una tarea por candidato entre un pool fijo de workers.
// El canal de resultados es el único punto de sincronización; se cierra
// cuando todas las tareas terminaron.
func fanOut[T any](ctx context.Context, workers int, cands []scanner.Candidate, work func(scanner.Candidate) (T, error)) <-chan result[T] {
	// Buffer completo para evitar bloqueo de workers
	jobs := make(chan scanner.Candidate, len(cands))
	results := make(chan result[T], len(cands))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result[T]{cand: c, err: err}
					continue
				}
				v, err := work(c)
				results <- result[T]{cand: c, val: v, err: err}
			}
		}()
	}

	for _, c := range cands {
		jobs <- c
	}
	close(jobs)

	// Monitor de cierre
	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// collect drena los resultados aplicando la política de errores.
// Con Abort se guarda el primer error y se espera al resto (barrera).
func collect[T any](r *Runner, phase string, results <-chan result[T], total int, keep func(scanner.Candidate, T)) ([]scanner.Candidate, error) {
	r.opts.Progress.Start(phase, total)
	defer r.opts.Progress.Stop()

	var (
		firstErr error
		skipped  []scanner.Candidate
	)
	for res := range results {
		r.opts.Progress.Increment()

		if res.err == nil {
			keep(res.cand, res.val)
			continue
		}

		fatal := r.opts.OnError == scanner.Abort ||
			errors.Is(res.err, context.Canceled) ||
			errors.Is(res.err, context.DeadlineExceeded)
		if fatal {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}

		r.log.Warn().Err(res.err).Str("path", res.cand.Path).Msg("omitiendo archivo ilegible")
		skipped = append(skipped, res.cand)
	}

	if firstErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrHash, firstErr)
	}
	return skipped, nil
}

// hashAll calcula el hash completo de cada candidato en paralelo.
// Los registros llegan en orden de finalización, no de descubrimiento.
func (r *Runner) hashAll(ctx context.Context, cands []scanner.Candidate) ([]*entities.FileRecord, []scanner.Candidate, error) {
	if len(cands) == 0 {
		return nil, nil, nil
	}
	algo := r.opts.Algorithm
	results := fanOut(ctx, r.opts.Workers, cands, func(c scanner.Candidate) (*entities.FileRecord, error) {
		sum, stats, err := hasher.HashFile(c.Path, algo)
		if err != nil {
			return nil, err
		}
		return &entities.FileRecord{
			Path:     c.Path,
			Size:     stats.Size,
			Hash:     sum,
			ModTime:  stats.ModTime,
			DeviceID: stats.DeviceID,
			Inode:    stats.Inode,
			Order:    c.Order,
		}, nil
	})

	records := make([]*entities.FileRecord, 0, len(cands))
	skipped, err := collect(r, "hashing", results, len(cands), func(_ scanner.Candidate, rec *entities.FileRecord) {
		records = append(records, rec)
	})
	if err != nil {
		return nil, nil, err
	}
	return records, skipped, nil
}
