package hasher

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ChunkSize es el tamaño de cada lectura: memoria acotada por tarea.
const ChunkSize = 8 * 1024

// PreHashSize define cuánto leemos para la prueba rápida (4KB)
const PreHashSize = 4 * 1024

// bufferPool para las lecturas por bloques
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, ChunkSize)
		return &b
	},
}

// xxPool para reutilizar el estado del digest del pre-hash
var xxPool = sync.Pool{
	New: func() any {
		return xxhash.New()
	},
}

// ErrRead envuelve los fallos de apertura o lectura.
var ErrRead = errors.New("failed to hash file")

// FileStats son los metadatos tomados del descriptor abierto.
type FileStats struct {
	Size     int64
	ModTime  time.Time
	DeviceID uint64
	Inode    uint64
}

// HashFile calcula el hash completo del contenido en bloques de 8KB.
// Devuelve el digest en hexadecimal (longitud fija por algoritmo).
func HashFile(path string, algo Algorithm) (string, FileStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", FileStats{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	// Obtener stats del descriptor abierto (Rápido)
	info, err := file.Stat()
	if err != nil {
		return "", FileStats{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	stats := FileStats{Size: info.Size(), ModTime: info.ModTime()}
	stats.DeviceID, stats.Inode = sysInfo(info)

	pool, err := digestPool(algo)
	if err != nil {
		return "", stats, err
	}
	h := pool.Get().(hash.Hash)
	h.Reset()
	defer pool.Put(h)

	bufPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufPtr)

	if err := streamInto(h, file, *bufPtr); err != nil {
		return "", stats, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), stats, nil
}

// streamInto lee src por bloques del tamaño de buf y los escribe en h.
func streamInto(h hash.Hash, src io.Reader, buf []byte) error {
	for {
		n, err := src.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// HashFirstBlock optimizado para baja latencia.
// NO usa sync.Pool de buffers para evitar contención en lecturas pequeñas.
func HashFirstBlock(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	h := xxPool.Get().(*xxhash.Digest)
	h.Reset()
	defer xxPool.Put(h)

	buf := make([]byte, PreHashSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	// Hash de lo que se haya podido leer
	_, _ = h.Write(buf[:n])

	return h.Sum64(), nil
}
