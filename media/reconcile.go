package media

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/facette/natsort"
)

// OrphanReport lists on-disk gallery artifacts with no owning asset row.
// The sweep is strictly read-only: deviations between store and metadata are
// reconciled only by the explicit delete path, never here.
type OrphanReport struct {
	Orphans []string `json:"orphans"`
	Scanned int      `json:"scanned"`
}

// SweepOrphans walks the gallery root and reports every file not reachable
// from any asset's path fields, in natural order.
func (ing *Ingestor) SweepOrphans() (*OrphanReport, error) {
	assets, err := ing.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for sweep: %w", err)
	}

	owned := make(map[string]bool)
	for _, a := range assets {
		for _, p := range a.AllPaths() {
			owned[p] = true
		}
	}

	report := &OrphanReport{Orphans: []string{}}
	root := ing.store.Root()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fragment := filepath.ToSlash(rel)
		report.Scanned++
		if !owned[fragment] {
			report.Orphans = append(report.Orphans, fragment)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk gallery root: %w", err)
	}

	natsort.Sort(report.Orphans)
	return report, nil
}
