package engine

import "errors"

var (
	// ErrScan envuelve fallos de la fase de recorrido.
	ErrScan = errors.New("scan failed")

	// ErrHash envuelve el primer fallo de la fase de hashing.
	ErrHash = errors.New("hashing failed")

	// ErrInconsistentGroup indica mismo hash con tamaños distintos.
	ErrInconsistentGroup = errors.New("inconsistent duplicate group")

	// ErrUnknownStrategy se devuelve al parsear una estrategia inválida.
	ErrUnknownStrategy = errors.New("unknown keep strategy")
)
