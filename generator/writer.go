package generator

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteModels saves each rendered model into its own file under dir,
// named after its table through the file-case option. Files land in the
// schema's table order; onFile, when non-nil, runs after each write so
// callers can report progress.
func (g *Generator) WriteModels(res *Result, dir string, onFile func(path string)) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output folder: %v", err)
		}
	}

	ext := g.opts.Lang.Ext()
	written := make([]string, 0, len(res.Models))
	for _, t := range g.data.Tables {
		text, ok := res.Models[t.QName()]
		if !ok {
			continue
		}
		path := filepath.Join(dir, g.FileName(t.Name)+ext)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return written, fmt.Errorf("writing model file %s: %v", path, err)
		}
		written = append(written, path)
		if onFile != nil {
			onFile(path)
		}
	}
	return written, nil
}
