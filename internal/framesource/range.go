// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

package framesource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ExpandRange lists the directory shared by start and end and returns the
// paths whose names fall lexically between the two endpoints, inclusive.
// Both endpoints must name files in the same directory.
func ExpandRange(start, end string) ([]string, error) {
	dir, startName, err := splitPath(start)
	if err != nil {
		return nil, err
	}
	endDir, endName, err := splitPath(end)
	if err != nil {
		return nil, err
	}
	if dir != endDir {
		return nil, fmt.Errorf("framesource: start and end files are from different directories")
	}
	if startName > endName {
		startName, endName = endName, startName
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); name >= startName && name <= endName {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("framesource: no files in range %s..%s", startName, endName)
	}
	return paths, nil
}

func splitPath(p string) (dir, name string, err error) {
	name = filepath.Base(p)
	if name == "." || name == string(filepath.Separator) {
		return "", "", fmt.Errorf("framesource: invalid filename %q", p)
	}
	dir = filepath.Dir(p)
	return dir, name, nil
}
