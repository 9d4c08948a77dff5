package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Variables de compilación (-ldflags).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Flags.
var (
	configPath  string
	dirs        []string
	actionName  string
	moveTo      string
	dryRun      bool
	minSize     string
	maxSize     string
	includeExt  []string
	excludeExt  []string
	excludeDirs []string
	threads     int
	hashName    string
	keepName    string
	onError     string
	quickFilter bool
	assumeYes   bool
	jsonOut     bool
	scriptOut   string
	analyze     bool
	verbosity   int
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Busca archivos duplicados y libera espacio de forma segura",
	Long: `dedup recorre uno o varios directorios, agrupa los archivos con
contenido idéntico (hash BLAKE3 por defecto) y aplica una acción a cada copia
redundante: borrar, mover, o reemplazar por un hardlink o symlink.
Siempre se conserva un archivo por grupo (el "keeper").
Usa --dry-run para ver qué pasaría sin tocar nada.`,
	Example: `  dedup -d ~/Fotos -d /mnt/backup/Fotos
  dedup -d . --action delete --dry-run
  dedup -d . --action move --move-to ./TRASH_BIN --min-size 1MB
  dedup -d . --action hardlink --include-ext jpg,png -y`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDedup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dedup %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", date)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "archivo de configuración (.yaml o .toml)")
	f.StringSliceVarP(&dirs, "dir", "d", nil, "directorios a escanear (repetible)")
	f.StringVarP(&actionName, "action", "a", "list", "acción: list, delete, move, hardlink, symlink")
	f.StringVar(&moveTo, "move-to", "", "directorio destino para --action move")
	f.BoolVar(&dryRun, "dry-run", false, "muestra qué se haría sin modificar nada")
	f.StringVar(&minSize, "min-size", "0", "tamaño mínimo (1000, 10MB, 1GiB)")
	f.StringVar(&maxSize, "max-size", "", "tamaño máximo (vacío = sin límite)")
	f.StringSliceVar(&includeExt, "include-ext", nil, "solo estas extensiones (jpg,png,pdf)")
	f.StringSliceVar(&excludeExt, "exclude-ext", nil, "ignorar estas extensiones (tmp,log)")
	f.StringSliceVar(&excludeDirs, "exclude-dir", nil, "ignorar carpetas con este nombre (.git,node_modules)")
	f.IntVar(&threads, "threads", 0, "workers de hashing (0 = auto)")
	f.StringVar(&hashName, "hash", "blake3", "algoritmo: blake3, sha256, xxh64")
	f.StringVar(&keepName, "keep", "first", "keeper: first, shortest, longest, oldest, newest, path")
	f.StringVar(&onError, "on-error", "abort", "archivos ilegibles: abort o skip")
	f.BoolVar(&quickFilter, "quick-filter", false, "descarta antes por tamaño y primer bloque (4KB)")
	f.BoolVarP(&assumeYes, "yes", "y", false, "no pedir confirmación (¡cuidado!)")
	f.BoolVar(&jsonOut, "json", false, "salida en formato JSON a stdout")
	f.StringVar(&scriptOut, "script", "", "genera un script .sh de revisión")
	f.BoolVar(&analyze, "analyze", false, "muestra el análisis por tamaño")
	f.CountVarP(&verbosity, "verbose", "v", "más detalle (-v, -vv, -vvv)")
	f.BoolVar(&noColor, "no-color", false, "desactiva los colores")

	rootCmd.AddCommand(versionCmd)
}

// Execute ejecuta el comando raíz.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error fatal: %v\n", err)
		return err
	}
	return nil
}
