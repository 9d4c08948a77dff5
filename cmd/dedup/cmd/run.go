package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/soyunomas/dedup/internal/actions"
	"github.com/soyunomas/dedup/internal/config"
	"github.com/soyunomas/dedup/internal/engine"
	"github.com/soyunomas/dedup/internal/entities"
	"github.com/soyunomas/dedup/internal/logging"
	"github.com/soyunomas/dedup/internal/report"
)

// errJSONNeedsYes: en modo JSON no hay prompt interactivo.
var errJSONNeedsYes = errors.New("--json with a live action requires --yes or --dry-run")

func runDedup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, changedFlags(cmd.Flags()))
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.Verbose, cfg.NoColor)

	action, err := cfg.ActionSpec()
	if err != nil {
		return err
	}
	if cfg.JSON && action.Mutates() && !cfg.DryRun && !cfg.Yes {
		return errJSONNeedsYes
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts.Logger = &logger
	if !cfg.JSON && isatty.IsTerminal(os.Stderr.Fd()) {
		opts.Progress = newProgress(os.Stderr)
	}

	out := cmd.OutOrStdout()
	color := !cfg.NoColor && isTerminal(out)
	render := report.NewRenderer(out, color)

	// 1. Escaneo + hashing + agrupación
	runner := engine.New(opts)
	if !cfg.JSON {
		fmt.Fprintf(out, "🚀 dedup %s - Escaneando: %s\n", version, strings.Join(cfg.Dirs, ", "))
		fmt.Fprintf(out, "⚖️  Keeper: %s | Hash: %s | Workers: %d\n", opts.Strategy, opts.Algorithm, runner.Workers())
	}
	scan, err := runner.Run(cmd.Context(), cfg.Dirs)
	if err != nil {
		return err
	}

	// 2. Generar Reporte
	rep := report.Build(scan, report.Metadata{
		ScannedPaths: cfg.Dirs,
		Strategy:     opts.Strategy.String(),
		Algorithm:    string(opts.Algorithm),
		Action:       action.Kind.String(),
		DryRun:       cfg.DryRun,
	})
	if cfg.Analyze {
		a := entities.Analyze(scan)
		rep.Analysis = &a
	}

	if cfg.Script != "" {
		if err := report.WriteScript(cfg.Script, rep); err != nil {
			return fmt.Errorf("writing script %s: %w", cfg.Script, err)
		}
		cli := logging.Component("cli")
		cli.Info().Str("path", cfg.Script).Msg("script generado")
	}

	if !cfg.JSON {
		render.Warnings(scan.Warnings)
		render.Scan(rep, cfg.Verbose > 0 || action.Mutates())
		if rep.Analysis != nil {
			render.Analysis(*rep.Analysis)
		}
	}

	// 3. Acciones
	if action.Mutates() && len(scan.Groups) > 0 {
		proceed, err := confirm(cfg, out)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(out, "Operación cancelada")
			return nil
		}

		exec, err := actions.New(actions.Options{Action: action, DryRun: cfg.DryRun, Logger: &logger})
		if err != nil {
			return err
		}
		summary, err := exec.Execute(cmd.Context(), scan)
		rep.Actions = summary
		if err != nil {
			return err
		}
		if !cfg.JSON {
			render.ActionSummary(summary, cfg.DryRun)
		}
	}

	if cfg.JSON {
		return report.WriteJSON(out, rep)
	}
	if cfg.Script != "" {
		fmt.Fprintf(out, "\n📄 Script generado: %s\n", cfg.Script)
	}
	return nil
}

// confirm pide confirmación antes de modificar el disco.
func confirm(cfg *config.Config, out io.Writer) (bool, error) {
	if cfg.DryRun {
		if !cfg.JSON {
			fmt.Fprintln(out, "🧪 Modo dry-run: no se hará ningún cambio")
		}
		return true, nil
	}
	if cfg.Yes {
		return true, nil
	}
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText("¿Continuar con la acción seleccionada?").
		Show()
}

// changedFlags convierte los flags usados en la línea de comandos en
// claves de configuración ("move-to" -> "move_to").
func changedFlags(flags *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch f.Value.Type() {
		case "stringSlice":
			v, _ := flags.GetStringSlice(f.Name)
			overrides[key] = v
		case "count":
			v, _ := flags.GetCount(f.Name)
			overrides[key] = v
		default:
			overrides[key] = f.Value.String()
		}
	})
	return overrides
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
