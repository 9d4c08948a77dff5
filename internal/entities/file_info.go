package entities

import (
	"time"
)

// FileRecord representa un archivo ya hasheado con los metadatos necesarios.
// Se crea una sola vez por archivo y no se modifica después.
type FileRecord struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size_bytes"`
	Hash     string    `json:"hash"`
	ModTime  time.Time `json:"mod_time"`
	DeviceID uint64    `json:"device_id"`
	Inode    uint64    `json:"inode"`
	// Order es la posición del archivo en el recorrido (descubrimiento).
	Order int `json:"-"`
}

// SameInode indica si ambos registros apuntan al mismo inodo (hardlink existente).
func (f *FileRecord) SameInode(other *FileRecord) bool {
	if f.Inode == 0 && f.DeviceID == 0 {
		return false
	}
	return f.DeviceID == other.DeviceID && f.Inode == other.Inode
}

// DuplicateGroup agrupa archivos con el mismo hash de contenido.
// Files[0] es el "Keeper": nunca se toca.
type DuplicateGroup struct {
	Hash  string        `json:"hash"`
	Files []*FileRecord `json:"files"`
}

// Add agrega un archivo al grupo
func (g *DuplicateGroup) Add(f *FileRecord) {
	g.Files = append(g.Files, f)
}

// Count devuelve el número de miembros.
func (g *DuplicateGroup) Count() int {
	return len(g.Files)
}

// Keeper devuelve el representante del grupo.
func (g *DuplicateGroup) Keeper() *FileRecord {
	if len(g.Files) == 0 {
		return nil
	}
	return g.Files[0]
}

// Duplicates devuelve todos los miembros excepto el Keeper.
func (g *DuplicateGroup) Duplicates() []*FileRecord {
	if len(g.Files) < 2 {
		return nil
	}
	return g.Files[1:]
}

// Size es el tamaño del Keeper (todos los miembros comparten tamaño).
func (g *DuplicateGroup) Size() int64 {
	if k := g.Keeper(); k != nil {
		return k.Size
	}
	return 0
}

// WastedBytes = tamaño * (n - 1)
func (g *DuplicateGroup) WastedBytes() int64 {
	if len(g.Files) < 2 {
		return 0
	}
	return g.Size() * int64(len(g.Files)-1)
}
