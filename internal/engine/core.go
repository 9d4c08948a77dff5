package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/soyunomas/dedup/internal/entities"
	"github.com/soyunomas/dedup/internal/hasher"
	"github.com/soyunomas/dedup/internal/scanner"
)

// Options configura una ejecución completa (escaneo + hashing + agrupación).
type Options struct {
	Filter    scanner.Config
	Workers   int // 0 = runtime.NumCPU()
	Algorithm hasher.Algorithm
	Strategy  KeepStrategy
	OnError   scanner.ErrorPolicy
	// QuickFilter activa el descarte previo por tamaño y primer bloque.
	QuickFilter bool
	Progress    Progress
	Logger      *zerolog.Logger
}

// Progress recibe avances de las fases paralelas.
// Las llamadas llegan siempre desde una sola goroutine.
type Progress interface {
	Start(phase string, total int)
	Increment()
	Stop()
}

type nopProgress struct{}

func (nopProgress) Start(string, int) {}
func (nopProgress) Increment()        {}
func (nopProgress) Stop()             {}

type Runner struct {
	opts Options
	log  zerolog.Logger
}

func New(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Algorithm == "" {
		opts.Algorithm = hasher.Blake3
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	opts.Filter.OnError = opts.OnError

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "engine").Logger()
		opts.Filter.Logger = opts.Logger
	}
	return &Runner{opts: opts, log: logger}
}

// Workers devuelve el paralelismo efectivo.
func (r *Runner) Workers() int {
	return r.opts.Workers
}

// Run ejecuta escaneo, hashing y agrupación sobre las raíces dadas.
func (r *Runner) Run(ctx context.Context, roots []string) (*entities.ScanResult, error) {
	start := time.Now()

	// --- PASO 1: SCANNER ---
	r.log.Info().Strs("roots", roots).Msg("fase 1: escaneando sistema de archivos")
	sc := scanner.New(r.opts.Filter)
	col, err := sc.Scan(ctx, roots)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScan, err)
	}
	r.log.Info().Int("files", len(col.Candidates)).Int64("bytes", col.Bytes).Msg("archivos encontrados")

	result := entities.NewScanResult()
	result.Warnings = col.Warnings
	result.TotalFiles = int64(len(col.Candidates))
	result.TotalBytes = col.Bytes

	candidates := col.Candidates
	if len(candidates) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	// --- PASO 2: PRE-FILTRO (opcional) ---
	if r.opts.QuickFilter {
		var skipped []scanner.Candidate
		candidates, skipped, err = r.prefilter(ctx, candidates)
		if err != nil {
			return nil, err
		}
		r.discount(result, skipped)
		r.log.Info().Int("candidates", len(candidates)).Msg("candidatos tras pre-filtro")
	}

	// --- PASO 3: FULL HASHING ---
	r.log.Info().Int("workers", r.opts.Workers).Str("algorithm", string(r.opts.Algorithm)).Msg("fase 3: hashing completo")
	records, skipped, err := r.hashAll(ctx, candidates)
	if err != nil {
		return nil, err
	}
	r.discount(result, skipped)

	// --- PASO 4: AGRUPAR, ORDENAR Y FINALIZAR ---
	groups, err := buildIndex(records)
	if err != nil {
		return nil, err
	}
	sortGroups(groups, r.opts.Strategy)

	result.Groups = groups
	result.Duration = time.Since(start)

	r.log.Info().
		Int("groups", len(groups)).
		Int64("duplicates", result.DuplicateCount()).
		Int64("wasted", result.WastedBytes()).
		Dur("duration", result.Duration).
		Msg("hashing terminado")
	return result, nil
}

// discount descuenta de los totales los archivos omitidos por error de lectura.
func (r *Runner) discount(result *entities.ScanResult, skipped []scanner.Candidate) {
	for _, c := range skipped {
		result.TotalFiles--
		result.TotalBytes -= c.Size
	}
}
