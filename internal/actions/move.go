package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/soyunomas/dedup/internal/entities"
)

func (e *Executor) move(dup *entities.FileRecord, size int64) entities.ActionOutcome {
	target := e.opts.Action.TargetDir

	if err := e.ensureTarget(target); err != nil {
		return e.fail(dup, err)
	}

	dest := e.uniqueDestination(target, filepath.Base(dup.Path))
	if e.opts.DryRun {
		return e.ok(dup, size, dest)
	}

	// Rename es atómico dentro del mismo FS
	if err := os.Rename(dup.Path, dest); err != nil {
		if errors.Is(err, syscall.EXDEV) {
			return e.fail(dup, fmt.Errorf("%w: %s -> %s", ErrCrossDevice, dup.Path, dest))
		}
		return e.fail(dup, fmt.Errorf("%w: %w", ErrMove, err))
	}
	return e.ok(dup, size, dest)
}

// ensureTarget prepara el directorio destino una sola vez por ejecución.
// En dry-run no se crea nada: solo se comprueba que MkdirAll podría hacerlo.
func (e *Executor) ensureTarget(dir string) error {
	if e.targetOK {
		return nil
	}
	if e.targetErr != nil {
		return e.targetErr
	}

	check := os.MkdirAll
	if e.opts.DryRun {
		check = checkCreatable
	}
	if err := check(dir, 0o755); err != nil {
		e.targetErr = fmt.Errorf("%w: %s: %w", ErrTargetDir, dir, err)
		return e.targetErr
	}
	e.targetOK = true
	return nil
}

// checkCreatable sube hasta el primer ancestro existente: debe ser un
// directorio. Un archivo regular en el camino hace fallar a MkdirAll.
func checkCreatable(dir string, _ os.FileMode) error {
	for p := filepath.Clean(dir); ; p = filepath.Dir(p) {
		info, err := os.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return &os.PathError{Op: "mkdir", Path: p, Err: syscall.ENOTDIR}
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if parent := filepath.Dir(p); parent == p {
			return nil
		}
	}
}

// uniqueDestination busca el primer nombre libre en dir:
// nombre.ext -> nombre_1.ext -> nombre_2.ext ...
// Un nombre está ocupado si existe en disco o ya se eligió en esta ejecución.
func (e *Executor) uniqueDestination(dir, name string) string {
	candidate := filepath.Join(dir, name)
	stem, ext := splitName(name)
	for counter := 1; e.taken(candidate); counter++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
	e.reserved[candidate] = struct{}{}
	return candidate
}

func (e *Executor) taken(path string) bool {
	if _, ok := e.reserved[path]; ok {
		return true
	}
	_, err := os.Lstat(path)
	return err == nil
}

// splitName separa "foto.jpg" en ("foto", ".jpg").
// Los archivos ocultos tipo ".bashrc" no tienen extensión.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
