package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/soyunomas/dedup/internal/engine"
	"github.com/soyunomas/dedup/internal/entities"
	"github.com/soyunomas/dedup/internal/hasher"
	"github.com/soyunomas/dedup/internal/scanner"
)

// ErrConfigFormat se devuelve para extensiones de archivo no soportadas.
var ErrConfigFormat = errors.New("unsupported config format (use .yaml, .yml or .toml)")

// ErrSizeTooLarge se devuelve para tamaños que no caben en int64.
var ErrSizeTooLarge = errors.New("size exceeds the maximum supported value")

// ValidationError agrupa todos los fallos de validación.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate comprueba la configuración antes de escanear o modificar nada.
// Devuelve la lista de errores (vacía si es válida).
func Validate(cfg *Config) []string {
	var errs []string

	if len(cfg.Dirs) == 0 {
		errs = append(errs, "at least one directory must be specified")
	}

	kind, err := entities.ParseActionKind(cfg.Action)
	if err != nil {
		errs = append(errs, err.Error())
	} else if err := (entities.Action{Kind: kind, TargetDir: cfg.MoveTo}).Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if _, err := hasher.ParseAlgorithm(cfg.Hash); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := engine.ParseKeepStrategy(cfg.Keep); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := scanner.ParsePolicy(cfg.OnError); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.Threads < 0 {
		errs = append(errs, fmt.Sprintf("threads must be >= 0, got %d", cfg.Threads))
	}

	minSize, err := parseSize(cfg.MinSize)
	if err != nil {
		errs = append(errs, fmt.Sprintf("min_size: %v", err))
	}
	maxSize, err := parseSize(cfg.MaxSize)
	if err != nil {
		errs = append(errs, fmt.Sprintf("max_size: %v", err))
	}
	if maxSize > 0 && minSize > maxSize {
		errs = append(errs, fmt.Sprintf("min_size (%d) is greater than max_size (%d)", minSize, maxSize))
	}

	return errs
}

// parseSize acepta bytes ("1000") o unidades ("10MB", "1GiB"). Vacío = 0.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrSizeTooLarge, s)
	}
	return int64(n), nil
}

// ActionSpec devuelve la acción elegida.
func (c *Config) ActionSpec() (entities.Action, error) {
	kind, err := entities.ParseActionKind(c.Action)
	if err != nil {
		return entities.Action{}, err
	}
	a := entities.Action{Kind: kind, TargetDir: c.MoveTo}
	return a, a.Validate()
}

// EngineOptions traduce la configuración a opciones del motor.
func (c *Config) EngineOptions() (engine.Options, error) {
	var opts engine.Options

	algo, err := hasher.ParseAlgorithm(c.Hash)
	if err != nil {
		return opts, err
	}
	strategy, err := engine.ParseKeepStrategy(c.Keep)
	if err != nil {
		return opts, err
	}
	policy, err := scanner.ParsePolicy(c.OnError)
	if err != nil {
		return opts, err
	}
	minSize, err := parseSize(c.MinSize)
	if err != nil {
		return opts, err
	}
	maxSize, err := parseSize(c.MaxSize)
	if err != nil {
		return opts, err
	}

	return engine.Options{
		Filter: scanner.Config{
			MinSize:     minSize,
			MaxSize:     maxSize,
			IncludeExt:  c.IncludeExt,
			ExcludeExt:  c.ExcludeExt,
			ExcludeDirs: c.ExcludeDirs,
		},
		Workers:     c.Threads,
		Algorithm:   algo,
		Strategy:    strategy,
		OnError:     policy,
		QuickFilter: c.QuickFilter,
	}, nil
}
