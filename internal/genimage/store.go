package genimage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore writes generated images under a local directory, the way the
// CLI does. File layout: <root>/<exercise_id>_<order>.png
type DirStore struct {
	Root string
}

func (d DirStore) SaveImage(_ context.Context, exerciseID string, order int, data []byte) (string, error) {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(d.Root, fmt.Sprintf("%s_%02d.png", exerciseID, order))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
