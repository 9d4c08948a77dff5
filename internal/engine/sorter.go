package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soyunomas/dedup/internal/entities"
)

// Definimos las estrategias de conservación disponibles
type KeepStrategy int

const (
	KeepFirstSeen KeepStrategy = iota // Default: orden de descubrimiento
	KeepShortestPath
	KeepLongestPath
	KeepOldest
	KeepNewest
	KeepPath // Alfabético
)

var strategyNames = []string{"first", "shortest", "longest", "oldest", "newest", "path"}

func (s KeepStrategy) String() string {
	if int(s) >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseKeepStrategy convierte "shortest", "oldest"... en KeepStrategy.
func ParseKeepStrategy(s string) (KeepStrategy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return KeepFirstSeen, nil
	}
	for i, n := range strategyNames {
		if n == name {
			return KeepStrategy(i), nil
		}
	}
	return KeepFirstSeen, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// sortGroups organiza los archivos dentro de cada grupo según la estrategia.
// El objetivo es que el archivo en la posición [0] sea el "Keeper" (Original),
// sin depender del orden en que terminaron los workers.
func sortGroups(groups map[string]*entities.DuplicateGroup, strategy KeepStrategy) {
	for _, group := range groups {
		if group.Count() < 2 {
			continue
		}

		// Si la función retorna TRUE, 'i' se coloca antes que 'j' (índice menor).
		sort.SliceStable(group.Files, func(i, j int) bool {
			f1 := group.Files[i]
			f2 := group.Files[j]

			switch strategy {

			case KeepFirstSeen:
				if f1.Order != f2.Order {
					return f1.Order < f2.Order
				}

			case KeepShortestPath:
				// [0] debe ser el más corto
				if len(f1.Path) != len(f2.Path) {
					return len(f1.Path) < len(f2.Path)
				}

			case KeepLongestPath:
				// [0] debe ser el más largo
				if len(f1.Path) != len(f2.Path) {
					return len(f1.Path) > len(f2.Path)
				}

			case KeepOldest:
				// [0] debe ser el más viejo (Fecha menor)
				if !f1.ModTime.Equal(f2.ModTime) {
					return f1.ModTime.Before(f2.ModTime)
				}

			case KeepNewest:
				// [0] debe ser el más nuevo (Fecha mayor)
				if !f1.ModTime.Equal(f2.ModTime) {
					return f1.ModTime.After(f2.ModTime)
				}
			}

			// --- CRITERIOS DE DESEMPATE (Tie-Breakers) ---
			// Alfabético: determinismo absoluto.
			return f1.Path < f2.Path
		})
	}
}
