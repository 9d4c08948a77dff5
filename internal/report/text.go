package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/soyunomas/dedup/internal/entities"
)

// Renderer escribe la salida legible para humanos.
type Renderer struct {
	w io.Writer

	title   lipgloss.Style
	section lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	dim     lipgloss.Style
}

// NewRenderer crea un Renderer; sin color usa el perfil ASCII.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		section: r.NewStyle().Bold(true),
		good:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		bad:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		dim:     r.NewStyle().Faint(true),
	}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Bytes formatea un tamaño en unidades decimales (kB, MB, GB).
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// Warnings lista las raíces omitidas.
func (r *Renderer) Warnings(warnings []string) {
	for _, w := range warnings {
		r.printf("%s\n", r.warn.Render("⚠️  "+w))
	}
}

// Scan muestra los grupos encontrados y el resumen del escaneo.
func (r *Renderer) Scan(rep Report, verbose bool) {
	if len(rep.Groups) == 0 {
		r.printf("%s\n", r.good.Render("✅ ¡Limpio! No se encontraron duplicados."))
		return
	}

	r.printf("\n%s\n", r.title.Render("🔴 DUPLICADOS ENCONTRADOS"))
	r.printf("%s\n", r.title.Render(strings.Repeat("=", 40)))

	for _, g := range rep.Groups {
		dupes := len(g.Victims) + len(g.HardLinks)
		waste := g.Size * int64(dupes)
		if !verbose {
			r.printf("%d duplicados de %s (%s)\n", dupes, filepath.Base(g.Keeper.Path), Bytes(waste))
			continue
		}
		r.printf("\n   📦 %s %s (Size: %s)\n", r.section.Render("Grupo"), r.dim.Render(shortHash(g.Hash)), Bytes(g.Size))
		r.printf("      👑 KEEPER: %s\n", g.Keeper.Path)
		for _, v := range g.Victims {
			r.printf("      🗑️  [Candidato]: %s\n", v.Path)
		}
		for _, hl := range g.HardLinks {
			r.printf("      🔗 [HardLink]: %s (0B)\n", hl)
		}
	}

	s := rep.Summary
	r.printf("\n%s\n", r.good.Render("📈 Resumen"))
	r.printf("%s\n", r.good.Render(strings.Repeat("-", 20)))
	r.printf("Archivos escaneados: %d (%s)\n", s.TotalFilesScanned, Bytes(s.TotalBytesScanned))
	r.printf("Grupos de duplicados: %d\n", s.TotalGroups)
	r.printf("Duplicados encontrados: %d\n", s.TotalDuplicates)
	if s.TotalHardLinks > 0 {
		r.printf("Hardlinks existentes: %d\n", s.TotalHardLinks)
	}
	r.printf("Espacio desperdiciado: %s\n", s.BytesWastedHuman)
	r.printf("Espacio recuperable: %s\n", s.BytesReclaimableHuman)
}

// Analysis muestra la distribución por tamaño y recomendaciones.
func (r *Renderer) Analysis(a entities.Analysis) {
	r.printf("\n%s\n", r.title.Render("🔍 Análisis de duplicados"))
	r.printf("%s\n", r.title.Render(strings.Repeat("=", 30)))
	r.printf("Grupos: %d\n", a.Groups)
	r.printf("Duplicados: %d\n", a.Duplicates)
	r.printf("Espacio desperdiciado: %s\n", Bytes(a.WastedBytes))

	r.printf("\n%s\n", r.section.Render("📊 Distribución por tamaño:"))
	r.printf("  Pequeños (≤1KB): %d\n", a.SmallFiles)
	r.printf("  Medianos (1KB-1MB): %d\n", a.MediumFiles)
	r.printf("  Grandes (>1MB): %d\n", a.LargeFiles)

	if a.LargestWaste > 0 {
		r.printf("\n%s\n", r.section.Render("🎯 Mayor oportunidad:"))
		r.printf("  Archivo: %s\n", a.LargestPath)
		r.printf("  Ahorro potencial: %s\n", Bytes(a.LargestWaste))
	}

	r.printf("\n%s\n", r.good.Render("💡 Recomendaciones:"))
	if a.LargeFiles > 0 {
		r.printf("  • Empieza por los archivos grandes para liberar más espacio\n")
	}
	if a.Duplicates > 100 {
		r.printf("  • Considera usar hardlinks para ahorrar espacio sin perder rutas\n")
	}
	if a.WastedBytes > 1_000_000_000 {
		r.printf("  • Ahorro significativo posible (>1GB)\n")
	}
	r.printf("  • Usa siempre --dry-run primero para previsualizar los cambios\n")
}

// ActionSummary muestra los totales de la fase de acciones y los errores.
func (r *Renderer) ActionSummary(s *entities.ActionSummary, dryRun bool) {
	title := "📊 Resumen de acciones"
	if dryRun {
		title += " (DRY RUN)"
	}
	r.printf("\n%s\n", r.good.Render(title))
	r.printf("%s\n", r.good.Render(strings.Repeat("-", 20)))

	for _, o := range s.Outcomes {
		if !o.Success {
			continue
		}
		verb := outcomeVerb(o, dryRun)
		if o.Destination != "" {
			r.printf("  %s %s -> %s\n", verb, o.Path, o.Destination)
		} else {
			r.printf("  %s %s\n", verb, o.Path)
		}
	}

	r.printf("Archivos procesados: %d\n", s.FilesProcessed)
	r.printf("Operaciones exitosas: %d\n", s.SuccessCount())
	r.printf("Operaciones fallidas: %d\n", s.FailureCount())
	r.printf("Espacio liberado: %s\n", Bytes(s.BytesReclaimed))

	if failed := s.Failures(); len(failed) > 0 {
		r.printf("\n%s\n", r.bad.Render("❌ Errores:"))
		for _, o := range failed {
			r.printf("  %s: %s\n", o.Path, o.Err)
		}
	}
}

func outcomeVerb(o entities.ActionOutcome, dryRun bool) string {
	if o.Skipped {
		return "⏭️  Ya enlazado:"
	}
	prefix := "✅"
	if dryRun {
		prefix = "🧪 Se haría"
	}
	switch o.Kind {
	case entities.ActionDelete:
		return prefix + " delete:"
	case entities.ActionMove:
		return prefix + " move:"
	case entities.ActionHardlink:
		return prefix + " hardlink:"
	case entities.ActionSymlink:
		return prefix + " symlink:"
	}
	return prefix
}
