// Package actions aplica la acción elegida sobre cada duplicado.
//
// El Keeper (Files[0]) de cada grupo nunca se toca. Cada duplicado se procesa
// de forma independiente: un fallo queda registrado en su ActionOutcome y el
// proceso sigue con el resto. En modo dry-run se calculan exactamente los
// mismos resultados que en modo real, sin modificar el sistema de archivos.
package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/soyunomas/dedup/internal/entities"
)

// Options configura una ejecución de acciones.
type Options struct {
	Action entities.Action
	DryRun bool
	Logger *zerolog.Logger
}

// Executor procesa los grupos de forma secuencial: un grupo y un miembro
// a la vez, para que los nombres elegidos en Move sean consistentes.
type Executor struct {
	opts Options
	log  zerolog.Logger

	// reserved guarda los destinos ya elegidos en esta ejecución.
	reserved  map[string]struct{}
	targetErr error
	targetOK  bool
}

// New valida la acción antes de tocar nada.
func New(opts Options) (*Executor, error) {
	if err := opts.Action.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().
			Str("component", "actions").
			Str("action", opts.Action.Kind.String()).
			Bool("dry_run", opts.DryRun).
			Logger()
	}
	return &Executor{
		opts:     opts,
		log:      logger,
		reserved: make(map[string]struct{}),
	}, nil
}

// Execute aplica la acción a todos los duplicados del escaneo.
// Solo devuelve error si el contexto se cancela; los fallos por archivo
// van dentro del resumen.
func (e *Executor) Execute(ctx context.Context, scan *entities.ScanResult) (*entities.ActionSummary, error) {
	summary := &entities.ActionSummary{}
	if e.opts.Action.Kind == entities.ActionList {
		return summary, nil
	}

	for _, group := range scan.SortedGroups() {
		keeper := group.Keeper()
		e.log.Debug().Str("hash", group.Hash).Str("keeper", keeper.Path).Msg("procesando grupo")

		for _, dup := range group.Duplicates() {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			outcome := e.process(keeper, dup)
			e.report(outcome)
			summary.Add(outcome)
		}
	}
	return summary, nil
}

func (e *Executor) process(keeper, dup *entities.FileRecord) entities.ActionOutcome {
	kind := e.opts.Action.Kind

	if samePath(keeper.Path, dup.Path) {
		return e.fail(dup, fmt.Errorf("%w: %s", ErrIsKeeper, dup.Path))
	}

	// Comprobaciones comunes a dry-run y modo real.
	size, err := regularFileSize(dup.Path)
	if err != nil {
		return e.fail(dup, err)
	}

	switch kind {
	case entities.ActionDelete:
		return e.delete(dup, size)
	case entities.ActionMove:
		return e.move(dup, size)
	case entities.ActionHardlink, entities.ActionSymlink:
		if _, err := os.Stat(keeper.Path); err != nil {
			return e.fail(dup, fmt.Errorf("%w: %w", ErrKeeperMissing, err))
		}
		if kind == entities.ActionHardlink {
			return e.hardlink(keeper, dup, size)
		}
		return e.symlink(keeper, dup, size)
	}
	return e.fail(dup, fmt.Errorf("%w: %s", entities.ErrUnknownAction, kind))
}

func (e *Executor) ok(dup *entities.FileRecord, reclaimed int64, dest string) entities.ActionOutcome {
	return entities.ActionOutcome{
		Path:           dup.Path,
		Kind:           e.opts.Action.Kind,
		Success:        true,
		BytesReclaimed: reclaimed,
		Destination:    dest,
		DryRun:         e.opts.DryRun,
	}
}

func (e *Executor) fail(dup *entities.FileRecord, err error) entities.ActionOutcome {
	return entities.ActionOutcome{
		Path:   dup.Path,
		Kind:   e.opts.Action.Kind,
		Err:    err.Error(),
		DryRun: e.opts.DryRun,
	}
}

func (e *Executor) report(o entities.ActionOutcome) {
	if !o.Success {
		e.log.Error().Str("path", o.Path).Str("error", o.Err).Msg("acción fallida")
		return
	}
	e.log.Info().
		Str("path", o.Path).
		Str("destination", o.Destination).
		Int64("reclaimed", o.BytesReclaimed).
		Bool("skipped", o.Skipped).
		Msg("acción aplicada")
}

// samePath compara dos rutas en forma absoluta y limpia.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// regularFileSize comprueba que el duplicado sigue siendo un archivo regular.
func regularFileSize(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStat, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	return info.Size(), nil
}
