package engine

import (
	"fmt"
	"path/filepath"

	"github.com/soyunomas/dedup/internal/entities"
)

// buildIndex agrupa los registros por hash respetando el orden de llegada
// y descarta los grupos de un solo archivo.
// Una ruta repetida solo entra una vez: un archivo nunca es duplicado de sí mismo.
// Un tamaño distinto bajo el mismo hash es un error interno fatal.
func buildIndex(records []*entities.FileRecord) (map[string]*entities.DuplicateGroup, error) {
	groups := make(map[string]*entities.DuplicateGroup)
	indexed := make(map[string]struct{}, len(records))
	for _, rec := range records {
		path := filepath.Clean(rec.Path)
		if _, dup := indexed[path]; dup {
			continue
		}
		indexed[path] = struct{}{}

		g, exists := groups[rec.Hash]
		if !exists {
			g = &entities.DuplicateGroup{Hash: rec.Hash}
			groups[rec.Hash] = g
		}
		g.Add(rec)
	}

	for hash, g := range groups {
		if g.Count() < 2 {
			delete(groups, hash)
			continue
		}
		keeper := g.Keeper()
		for _, f := range g.Duplicates() {
			if f.Size != keeper.Size {
				return nil, fmt.Errorf("%w: hash %s: %s (%d bytes) vs %s (%d bytes)",
					ErrInconsistentGroup, hash, keeper.Path, keeper.Size, f.Path, f.Size)
			}
		}
	}
	return groups, nil
}
