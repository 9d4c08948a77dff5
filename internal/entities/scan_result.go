package entities

import (
	"sort"
	"time"
)

// ScanResult es la salida de las fases de escaneo, hashing y agrupación.
// Es de solo lectura una vez construido.
type ScanResult struct {
	Groups     map[string]*DuplicateGroup `json:"groups"`
	TotalFiles int64                      `json:"total_files"`
	TotalBytes int64                      `json:"total_bytes"`
	Warnings   []string                   `json:"warnings,omitempty"`
	Duration   time.Duration              `json:"duration"`
}

// NewScanResult crea un resultado vacío.
func NewScanResult() *ScanResult {
	return &ScanResult{Groups: make(map[string]*DuplicateGroup)}
}

// DuplicateCount suma (n - 1) de cada grupo.
func (r *ScanResult) DuplicateCount() int64 {
	var total int64
	for _, g := range r.Groups {
		if g.Count() > 1 {
			total += int64(g.Count() - 1)
		}
	}
	return total
}

// WastedBytes suma el espacio ocupado por las copias redundantes.
func (r *ScanResult) WastedBytes() int64 {
	var total int64
	for _, g := range r.Groups {
		total += g.WastedBytes()
	}
	return total
}

// SortedGroups devuelve los grupos en un orden estable:
// primero los que más espacio desperdician, luego por hash.
func (r *ScanResult) SortedGroups() []*DuplicateGroup {
	groups := make([]*DuplicateGroup, 0, len(r.Groups))
	for _, g := range r.Groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		wi, wj := groups[i].WastedBytes(), groups[j].WastedBytes()
		if wi != wj {
			return wi > wj
		}
		return groups[i].Hash < groups[j].Hash
	})
	return groups
}
