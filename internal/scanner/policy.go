package scanner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorPolicy decide qué pasa cuando un archivo no se puede leer.
type ErrorPolicy int

const (
	Abort ErrorPolicy = iota // Default: el primer error de E/S aborta el escaneo
	Skip                     // Avisa y omite el archivo
)

var (
	// ErrMetadata envuelve los errores de stat/lectura durante el recorrido.
	ErrMetadata = errors.New("failed to read file metadata")

	// ErrUnknownPolicy se devuelve al parsear una política inválida.
	ErrUnknownPolicy = errors.New("unknown error policy")
)

func (p ErrorPolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy acepta "abort" o "skip".
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return Abort, nil
	case "skip":
		return Skip, nil
	}
	return Abort, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
