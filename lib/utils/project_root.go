package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

var rootMarkers = []string{"cdk.json", "go.mod", ".git"}

// GetProjectRootDir returns the directory holding cdk.json.
//
// $PROJECT_ROOT wins when set. Otherwise the working directory is searched
// upwards, then the directory this file was compiled from.
// Panics if no marker is found.
func GetProjectRootDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return filepath.Clean(root)
	}

	if wd, err := os.Getwd(); err == nil {
		if root := climb(wd); root != "" {
			return root
		}
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("GetProjectRootDir: runtime.Caller failed")
	}
	if root := climb(filepath.Dir(thisFile)); root != "" {
		return root
	}

	panic("GetProjectRootDir: project root not found, set $PROJECT_ROOT")
}

func climb(dir string) string {
	for {
		for _, m := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
