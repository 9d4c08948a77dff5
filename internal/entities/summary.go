package entities

// ActionOutcome es el resultado de procesar un duplicado.
// Se crea una vez y no se modifica.
type ActionOutcome struct {
	Path           string     `json:"path"`
	Kind           ActionKind `json:"action"`
	Success        bool       `json:"success"`
	Err            string     `json:"error,omitempty"`
	BytesReclaimed int64      `json:"bytes_reclaimed"`
	// Destination es la ruta final (Move) o el objetivo del enlace (links).
	Destination string `json:"destination,omitempty"`
	// Skipped marca duplicados que ya eran hardlink del Keeper.
	Skipped bool `json:"skipped,omitempty"`
	DryRun  bool `json:"dry_run"`
}

// ActionSummary acumula los resultados de la fase de acciones.
type ActionSummary struct {
	Outcomes       []ActionOutcome `json:"outcomes"`
	BytesReclaimed int64           `json:"bytes_reclaimed"`
	FilesProcessed int64           `json:"files_processed"`
}

// Add incorpora un resultado a los totales.
func (s *ActionSummary) Add(o ActionOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.FilesProcessed++
	s.BytesReclaimed += o.BytesReclaimed
}

func (s *ActionSummary) SuccessCount() int64 {
	var n int64
	for _, o := range s.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

func (s *ActionSummary) FailureCount() int64 {
	return s.FilesProcessed - s.SuccessCount()
}

// Failures devuelve solo las operaciones fallidas, en orden.
func (s *ActionSummary) Failures() []ActionOutcome {
	var failed []ActionOutcome
	for _, o := range s.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
