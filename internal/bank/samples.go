package bank

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed samples/*.yaml
var sampleFS embed.FS

// Samples returns the built-in banks, used when no bank directory is
// configured.
func Samples() ([]*Bank, error) {
	entries, err := fs.ReadDir(sampleFS, "samples")
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	banks := make([]*Bank, 0, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(sampleFS, path.Join("samples", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", e.Name(), err)
		}
		b, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", e.Name(), err)
		}
		if b.ID == "" {
			b.ID = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		}
		if b.Title == "" {
			b.Title = b.ID
		}
		banks = append(banks, b)
	}
	return banks, nil
}
