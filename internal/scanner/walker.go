package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Config define las reglas para el escaneo.
type Config struct {
	MinSize     int64    // Tamaño mínimo en bytes (inclusivo)
	MaxSize     int64    // Tamaño máximo en bytes (inclusivo). 0 = sin límite
	IncludeExt  []string // Si no está vacío, solo estas extensiones
	ExcludeExt  []string // Extensiones ignoradas siempre
	ExcludeDirs []string // Nombres de carpetas a ignorar
	OnError     ErrorPolicy
	Logger      *zerolog.Logger
}

// Candidate es un archivo que pasó todos los filtros.
type Candidate struct {
	Path  string
	Size  int64
	Order int // Posición en el recorrido
}

// Collection es la salida del escaneo: lista de candidatos y avisos.
type Collection struct {
	Candidates []Candidate
	Bytes      int64
	Warnings   []string
}

// Paths devuelve solo las rutas de los candidatos.
func (c *Collection) Paths() []string {
	paths := make([]string, len(c.Candidates))
	for i, cand := range c.Candidates {
		paths[i] = cand.Path
	}
	return paths
}

// FileScanner encapsula la lógica de recorrido del sistema de archivos.
type FileScanner struct {
	cfg        Config
	log        zerolog.Logger
	excludeMap map[string]struct{} // Optimización O(1)
	includeExt map[string]struct{}
	excludeExt map[string]struct{}
}

// New crea una nueva instancia del escáner con configuración.
func New(cfg Config) *FileScanner {
	exMap := make(map[string]struct{}, len(cfg.ExcludeDirs))
	for _, e := range cfg.ExcludeDirs {
		exMap[e] = struct{}{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "scanner").Logger()
	}

	return &FileScanner{
		cfg:        cfg,
		log:        logger,
		excludeMap: exMap,
		includeExt: extensionSet(cfg.IncludeExt),
		excludeExt: extensionSet(cfg.ExcludeExt),
	}
}

// Scan recorre cada raíz y devuelve los archivos que cumplen los filtros.
// Una raíz inexistente o que no es directorio genera un aviso, nunca un error.
func (s *FileScanner) Scan(ctx context.Context, roots []string) (*Collection, error) {
	col := &Collection{}
	seen := make(map[string]struct{})

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			s.warn(col, root, fmt.Sprintf("directory %s does not exist", root), err)
			continue
		}
		if !info.IsDir() {
			s.warn(col, root, fmt.Sprintf("%s is not a directory", root), nil)
			continue
		}

		// Una raíz que es symlink a directorio se recorre por su destino.
		walkRoot := root
		if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
			if resolved, err := filepath.EvalSymlinks(root); err == nil {
				walkRoot = resolved
			}
		}

		s.log.Debug().Str("root", walkRoot).Msg("recorriendo directorio")
		if err := s.walk(ctx, walkRoot, col, seen); err != nil {
			return nil, err
		}
	}

	s.log.Debug().Int("candidates", len(col.Candidates)).Msg("escaneo terminado")
	return col, nil
}

func (s *FileScanner) walk(ctx context.Context, root string, col *Collection, seen map[string]struct{}) error {
	canon := canonicalDir(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		// 1. Errores de acceso (permisos, etc)
		if err != nil {
			return s.handleError(path, err)
		}

		// 2. Directorios excluidos
		if d.IsDir() {
			if _, ok := s.excludeMap[d.Name()]; ok && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		// 3. Solo archivos regulares: los symlinks no se siguen
		if !d.Type().IsRegular() {
			return nil
		}

		// 4. Raíces solapadas (-d /data -d /data/sub): cada ruta una sola vez
		key := canon
		if rel, err := filepath.Rel(root, path); err == nil {
			key = filepath.Join(canon, rel)
		}
		if _, dup := seen[key]; dup {
			s.log.Debug().Str("path", path).Msg("ruta ya recogida desde otra raíz")
			return nil
		}

		// 5. Filtro de extensión (no requiere stat)
		if !s.extensionAllowed(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return s.handleError(path, err)
		}

		// 6. Filtro de tamaño
		size := info.Size()
		if !s.sizeAllowed(size) {
			return nil
		}

		seen[key] = struct{}{}

		col.Candidates = append(col.Candidates, Candidate{
			Path:  path,
			Size:  size,
			Order: len(col.Candidates),
		})
		col.Bytes += size
		return nil
	})
}

// canonicalDir devuelve la ruta absoluta sin symlinks del directorio.
func canonicalDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func (s *FileScanner) handleError(path string, err error) error {
	if s.cfg.OnError == Skip {
		s.log.Warn().Err(err).Str("path", path).Msg("omitiendo archivo ilegible")
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrMetadata, path, err)
}

func (s *FileScanner) warn(col *Collection, root, msg string, err error) {
	col.Warnings = append(col.Warnings, msg)
	s.log.Warn().Err(err).Str("root", root).Msg(msg)
}

func (s *FileScanner) sizeAllowed(size int64) bool {
	if size < s.cfg.MinSize {
		return false
	}
	if s.cfg.MaxSize > 0 && size > s.cfg.MaxSize {
		return false
	}
	return true
}

// extensionAllowed aplica las listas de inclusión y exclusión.
// La exclusión gana siempre; sin extensión solo pasa si no hay lista de inclusión.
func (s *FileScanner) extensionAllowed(name string) bool {
	ext, ok := Extension(name)
	if !ok {
		return len(s.includeExt) == 0
	}
	if len(s.includeExt) > 0 {
		if _, in := s.includeExt[ext]; !in {
			return false
		}
	}
	if _, out := s.excludeExt[ext]; out {
		return false
	}
	return true
}

// Extension devuelve la extensión en minúsculas y sin punto.
// Los archivos ocultos tipo ".bashrc" no tienen extensión.
func Extension(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return "", false
	}
	return strings.ToLower(strings.TrimPrefix(ext, ".")), true
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return set
}
