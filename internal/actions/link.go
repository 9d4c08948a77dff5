package actions

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/soyunomas/dedup/internal/entities"
)

func (e *Executor) hardlink(keeper, dup *entities.FileRecord, size int64) entities.ActionOutcome {
	// Ya es un hardlink del Keeper: nada que liberar.
	if dup.SameInode(keeper) {
		o := e.ok(dup, 0, keeper.Path)
		o.Skipped = true
		return o
	}
	if e.opts.DryRun {
		return e.ok(dup, size, keeper.Path)
	}
	if err := replaceWithLink(dup.Path, func(tmp string) error {
		return os.Link(keeper.Path, tmp)
	}); err != nil {
		return e.fail(dup, err)
	}
	return e.ok(dup, size, keeper.Path)
}

func (e *Executor) symlink(keeper, dup *entities.FileRecord, size int64) entities.ActionOutcome {
	// El enlace apunta a la ruta absoluta: funciona desde cualquier carpeta.
	target, err := filepath.Abs(keeper.Path)
	if err != nil {
		return e.fail(dup, fmt.Errorf("%w: %w", ErrLinkCreate, err))
	}
	if e.opts.DryRun {
		return e.ok(dup, size, target)
	}
	if err := replaceWithLink(dup.Path, func(tmp string) error {
		return os.Symlink(target, tmp)
	}); err != nil {
		return e.fail(dup, err)
	}
	return e.ok(dup, size, target)
}

// replaceWithLink crea el enlace con un nombre temporal junto al duplicado
// y luego lo renombra encima. Rename es atómico: si algo falla, el duplicado
// sigue en su sitio y nunca queda la ruta vacía.
func replaceWithLink(path string, create func(tmp string) error) error {
	tmp := tempLinkName(path)
	if err := create(tmp); err != nil {
		return fmt.Errorf("%w: %w", ErrLinkCreate, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrLinkReplace, err)
	}
	return nil
}

// tempLinkName genera un nombre oculto único en el mismo directorio:
// .archivo_171562912.dedup
func tempLinkName(path string) string {
	dir, base := filepath.Split(path)
	for {
		name := filepath.Join(dir, fmt.Sprintf(".%s_%d.dedup", base, time.Now().UnixNano()))
		if _, err := os.Lstat(name); err != nil {
			return name
		}
	}
}
