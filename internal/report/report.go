package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soyunomas/dedup/internal/entities"
)

// --- ESTRUCTURAS PARA EL REPORTE FINAL ---

type Report struct {
	Summary  Summary                 `json:"summary"`
	Groups   []GroupResult           `json:"groups"`
	Metadata Metadata                `json:"metadata"`
	Analysis *entities.Analysis      `json:"analysis,omitempty"`
	Actions  *entities.ActionSummary `json:"actions,omitempty"`
}

type Metadata struct {
	ScannedPaths []string  `json:"scanned_paths"`
	Strategy     string    `json:"strategy"`
	Algorithm    string    `json:"algorithm"`
	Action       string    `json:"action"`
	DryRun       bool      `json:"dry_run"`
	Timestamp    time.Time `json:"timestamp"`
	Duration     string    `json:"duration_human"`
	Warnings     []string  `json:"warnings,omitempty"`
}

type Summary struct {
	TotalFilesScanned int64  `json:"total_files_scanned"`
	TotalBytesScanned int64  `json:"total_bytes_scanned"`
	TotalGroups       int    `json:"total_groups"`
	TotalDuplicates   int64  `json:"total_duplicates"`
	TotalHardLinks    int64  `json:"total_hard_links"`
	BytesWasted       int64  `json:"bytes_wasted"`
	BytesWastedHuman  string `json:"bytes_wasted_human"`
	// Sin contar los hardlinks ya existentes
	BytesReclaimable      int64  `json:"bytes_reclaimable"`
	BytesReclaimableHuman string `json:"bytes_reclaimable_human"`
}

type GroupResult struct {
	Hash      string               `json:"hash"`
	Size      int64                `json:"file_size"`
	Keeper    *entities.FileRecord `json:"keeper"`
	Victims   []Victim             `json:"victims"`
	HardLinks []string             `json:"hardlinks"`
}

type Victim struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

type sysID struct {
	dev, inode uint64
}

// Build arma el reporte a partir del resultado del escaneo.
// Los duplicados que comparten inodo con otro miembro ya visto se listan
// como hardlinks: borrarlos no libera espacio.
func Build(scan *entities.ScanResult, meta Metadata) Report {
	meta.Duration = scan.Duration.String()
	meta.Warnings = scan.Warnings
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	rep := Report{
		Metadata: meta,
		Summary: Summary{
			TotalFilesScanned: scan.TotalFiles,
			TotalBytesScanned: scan.TotalBytes,
			TotalDuplicates:   scan.DuplicateCount(),
			BytesWasted:       scan.WastedBytes(),
		},
		Groups: []GroupResult{},
	}

	for _, group := range scan.SortedGroups() {
		keeper := group.Keeper()
		gRes := GroupResult{
			Hash:   group.Hash,
			Size:   group.Size(),
			Keeper: keeper,
		}

		seenInodes := make(map[sysID]bool)
		seenInodes[sysID{keeper.DeviceID, keeper.Inode}] = true

		for _, file := range group.Duplicates() {
			id := sysID{file.DeviceID, file.Inode}

			if file.Inode != 0 && seenInodes[id] {
				gRes.HardLinks = append(gRes.HardLinks, file.Path)
				rep.Summary.TotalHardLinks++
				continue
			}
			gRes.Victims = append(gRes.Victims, Victim{Path: file.Path, Size: file.Size})
			rep.Summary.BytesReclaimable += file.Size
			seenInodes[id] = true
		}

		rep.Groups = append(rep.Groups, gRes)
	}

	rep.Summary.TotalGroups = len(rep.Groups)
	rep.Summary.BytesWastedHuman = humanize.Bytes(uint64(rep.Summary.BytesWasted))
	rep.Summary.BytesReclaimableHuman = humanize.Bytes(uint64(rep.Summary.BytesReclaimable))
	return rep
}

// WriteJSON escribe el reporte indentado.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteScript genera un script .sh con un "rm" por cada duplicado,
// para revisarlo a mano antes de ejecutarlo.
// Las rutas van entre comillas simples: el shell no expande nada dentro.
func WriteScript(filename string, r Report) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "#!/bin/sh\n")
	fmt.Fprintf(w, "# Generado por dedup\n")
	fmt.Fprintf(w, "echo 'Iniciando limpieza...'\n\n")

	for _, g := range r.Groups {
		if len(g.Victims) == 0 {
			continue
		}
		fmt.Fprintf(w, "# Group Hash: %s\n", commentSafe(g.Hash))
		fmt.Fprintf(w, "# Keeper: %s\n", commentSafe(g.Keeper.Path))
		for _, v := range g.Victims {
			fmt.Fprintf(w, "rm -v -- %s\n", shellQuote(v.Path))
		}
		fmt.Fprintf(w, "\n")
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// shellQuote cita s para sh POSIX: 'a'\''b' representa a'b.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// commentSafe evita que un salto de línea termine el comentario.
var commentSafe = strings.NewReplacer("\n", `\n`, "\r", `\r`).Replace
