package file

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type WriteMode int

const (
	Truncate WriteMode = iota
	Append
)

// ReadLines returns the lines of path with surrounding whitespace removed.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return []string{}, nil
	}

	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSpace(line))
	}

	return lines, nil
}

// WriteLines writes every line terminated by exactly one newline.
func WriteLines(lines []string, path string, mode WriteMode) error {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, storeFileMod)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if !strings.HasSuffix(line, "\n") {
			if err := w.WriteByte('\n'); err != nil {
				_ = f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}

// EnsureDir creates path and its parents. An existing non-directory is an error.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%q already exists but is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, storeDirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}

	return nil
}

// WriteAtomic replaces path with data through a temp file in the same directory.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(perm); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	cleanup = false

	return nil
}
