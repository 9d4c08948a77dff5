package entities

import "errors"

var (
	// ErrUnknownAction se devuelve cuando el nombre de acción no existe.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingTarget se devuelve cuando Move no tiene directorio destino.
	ErrMissingTarget = errors.New("move action requires a target directory")
)
