// Package repository implements the file-backed stores. Each store keeps an
// insertion-ordered in-memory collection, loaded wholesale from one text file
// under the data directory and rewritten wholesale after every mutation.
// New records are prepended, so collections list newest first.
package repository

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Data file names, one per entity kind.
const (
	usersFile       = "utilisateurs.txt"
	studentsFile    = "etudiants.txt"
	teachersFile    = "enseignants.txt"
	subjectsFile    = "matieres.txt"
	gradesFile      = "notes.txt"
	annoncesFile    = "annonces.txt"
	enrollmentsFile = "inscriptions.txt"
	timetableFile   = "emploi_du_temps.txt"
)

// textStore wraps the line-oriented file primitives shared by every store.
type textStore struct {
	path string
}

func newTextStore(dataDir, filename string) textStore {
	return textStore{path: filepath.Join(dataDir, filename)}
}

// ensure creates the data directory and an empty backing file when absent.
// It reports whether the file was freshly created.
func (s textStore) ensure() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, fmt.Errorf("create data directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}
	file, err := os.Create(s.path)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", s.path, err)
	}
	return true, nil
}

// readLines returns every non-blank line of the backing file, creating it
// first when absent. The created flag lets callers seed fresh files.
func (s textStore) readLines() (lines []string, created bool, err error) {
	created, err = s.ensure()
	if err != nil {
		return nil, false, err
	}
	if created {
		return nil, true, nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer file.Close() //nolint:errcheck

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.path, err)
	}
	return lines, false, nil
}

// writeLines rewrites the whole backing file, one line per record. The write
// is not transactional: a crash mid-write can truncate the file.
func (s textStore) writeLines(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", s.path, err)
	}
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			file.Close() //nolint:errcheck
			return fmt.Errorf("write %s: %w", s.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close() //nolint:errcheck
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

// containsFold reports whether substr occurs in s, case-insensitively.
// Every string search menu matches on this.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
