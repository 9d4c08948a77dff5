package entities

import (
	"fmt"
	"strings"
)

// ActionKind define qué se hace con cada duplicado.
type ActionKind int

const (
	ActionList ActionKind = iota // Default: solo reporte
	ActionDelete
	ActionMove
	ActionHardlink
	ActionSymlink
)

var actionNames = map[ActionKind]string{
	ActionList:     "list",
	ActionDelete:   "delete",
	ActionMove:     "move",
	ActionHardlink: "hardlink",
	ActionSymlink:  "symlink",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// MarshalText permite serializar la acción por nombre en el reporte JSON.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseActionKind convierte un nombre ("delete", "move"...) en ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for kind, n := range actionNames {
		if n == name {
			return kind, nil
		}
	}
	return ActionList, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Action es la acción elegida para la ejecución.
// TargetDir solo aplica a ActionMove.
type Action struct {
	Kind      ActionKind
	TargetDir string
}

// Validate rechaza configuraciones imposibles antes de escanear.
func (a Action) Validate() error {
	if _, ok := actionNames[a.Kind]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(a.Kind))
	}
	if a.Kind == ActionMove && strings.TrimSpace(a.TargetDir) == "" {
		return ErrMissingTarget
	}
	return nil
}

// Mutates indica si la acción modifica el sistema de archivos en modo real.
func (a Action) Mutates() bool {
	return a.Kind != ActionList
}
