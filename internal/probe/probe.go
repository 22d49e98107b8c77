// Package probe answers "has this output already been produced?" by
// inspecting the filesystem. Every provisioning step's completion record
// is the presence of its own output, so these checks are the only state
// the pipeline keeps.
package probe

import (
	"os"
	"strings"
)

// FileNonEmpty reports whether path exists as a regular file with size > 0.
func FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DirHasEntries reports whether path is a directory containing at least
// min entries.
func DirHasEntries(path string, min int) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) >= min
}

// FileContainsLine reports whether any line of the file at path equals
// line exactly (ignoring trailing whitespace on each line).
func FileContainsLine(path, line string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimRight(l, " \t\r") == line {
			return true
		}
	}
	return false
}

// All returns a probe that is true only when every given probe is true.
func All(probes ...func() bool) func() bool {
	return func() bool {
		for _, p := range probes {
			if !p() {
				return false
			}
		}
		return true
	}
}
