package batch

import (
	"fmt"
	"os"
)

// ListDir returns the names of every entry in dir, in the order the
// directory read returns them. The list is not sorted or filtered.
func ListDir(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("list input directory: %w", err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("list input directory %s: %w", dir, err)
	}
	return names, nil
}
