package entities

const (
	smallFileLimit  = 1024
	mediumFileLimit = 1024 * 1024
)

// Analysis resume dónde está el espacio desperdiciado.
type Analysis struct {
	Groups      int   `json:"groups"`
	Duplicates  int64 `json:"duplicates"`
	WastedBytes int64 `json:"wasted_bytes"`
	SmallFiles  int64 `json:"small_files"`  // <= 1KB
	MediumFiles int64 `json:"medium_files"` // 1KB - 1MB
	LargeFiles  int64 `json:"large_files"`  // > 1MB
	// Mayor oportunidad individual
	LargestPath  string `json:"largest_path,omitempty"`
	LargestWaste int64  `json:"largest_waste"`
}

// Analyze calcula la distribución de duplicados por tamaño.
func Analyze(r *ScanResult) Analysis {
	var a Analysis
	for _, g := range r.SortedGroups() {
		dupes := int64(g.Count() - 1)
		if dupes < 1 {
			continue
		}
		a.Groups++
		a.Duplicates += dupes
		a.WastedBytes += g.WastedBytes()

		switch size := g.Size(); {
		case size <= smallFileLimit:
			a.SmallFiles += dupes
		case size <= mediumFileLimit:
			a.MediumFiles += dupes
		default:
			a.LargeFiles += dupes
		}

		if g.WastedBytes() > a.LargestWaste {
			a.LargestWaste = g.WastedBytes()
			a.LargestPath = g.Keeper().Path
		}
	}
	return a
}
