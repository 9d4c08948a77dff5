package actions

import "errors"

var (
	// ErrStat se devuelve cuando el duplicado ya no se puede consultar.
	ErrStat = errors.New("failed to get metadata")

	// ErrNotRegular indica que la ruta ya no es un archivo regular.
	ErrNotRegular = errors.New("not a regular file")

	// ErrIsKeeper: el duplicado es la misma ruta que el Keeper.
	ErrIsKeeper = errors.New("duplicate is the keeper itself")

	// ErrKeeperMissing indica que el Keeper desapareció antes de enlazar.
	ErrKeeperMissing = errors.New("keeper is missing")

	// ErrDelete envuelve fallos al borrar.
	ErrDelete = errors.New("failed to delete")

	// ErrMove envuelve fallos al mover.
	ErrMove = errors.New("failed to move")

	// ErrCrossDevice: origen y destino en sistemas de archivos distintos.
	ErrCrossDevice = errors.New("cross-device move is not supported")

	// ErrTargetDir se devuelve si no se pudo crear el directorio destino.
	ErrTargetDir = errors.New("failed to create target directory")

	// ErrLinkCreate: no se pudo crear el enlace temporal. El duplicado sigue intacto.
	ErrLinkCreate = errors.New("failed to create link")

	// ErrLinkReplace: el enlace existe pero no pudo reemplazar al duplicado.
	ErrLinkReplace = errors.New("failed to replace duplicate with link")
)
