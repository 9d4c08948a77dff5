package config

// Config es la configuración completa de una ejecución.
// Las claves koanf coinciden con los flags de la CLI ("-" -> "_").
type Config struct {
	Dirs        []string `koanf:"dir"`
	Action      string   `koanf:"action"`
	MoveTo      string   `koanf:"move_to"`
	DryRun      bool     `koanf:"dry_run"`
	MinSize     string   `koanf:"min_size"` // "0", "1000", "10MB", "1GiB"
	MaxSize     string   `koanf:"max_size"` // vacío = sin límite
	IncludeExt  []string `koanf:"include_ext"`
	ExcludeExt  []string `koanf:"exclude_ext"`
	ExcludeDirs []string `koanf:"exclude_dir"`
	Threads     int      `koanf:"threads"` // 0 = auto
	Hash        string   `koanf:"hash"`
	Keep        string   `koanf:"keep"`
	OnError     string   `koanf:"on_error"`
	QuickFilter bool     `koanf:"quick_filter"`

	// Salida
	Yes     bool   `koanf:"yes"`
	JSON    bool   `koanf:"json"`
	Script  string `koanf:"script"`
	Analyze bool   `koanf:"analyze"`
	Verbose int    `koanf:"verbose"`
	NoColor bool   `koanf:"no_color"`
}

// Defaults son los valores base antes de archivo, entorno y flags.
func Defaults() map[string]any {
	return map[string]any{
		"dir":          []string{},
		"action":       "list",
		"move_to":      "",
		"dry_run":      false,
		"min_size":     "0",
		"max_size":     "",
		"include_ext":  []string{},
		"exclude_ext":  []string{},
		"exclude_dir":  []string{},
		"threads":      0,
		"hash":         "blake3",
		"keep":         "first",
		"on_error":     "abort",
		"quick_filter": false,
		"yes":          false,
		"json":         false,
		"script":       "",
		"analyze":      false,
		"verbose":      0,
		"no_color":     false,
	}
}

// listKeys son las claves que en variables de entorno van separadas por comas.
var listKeys = map[string]bool{
	"dir":         true,
	"include_ext": true,
	"exclude_ext": true,
	"exclude_dir": true,
}
