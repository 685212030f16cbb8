// Package csvstore implements the line-oriented flat-file store backing the
// entity repositories. Each store is one file: a header row followed by one
// delimited row per record. Fields are split and joined on a fixed delimiter
// with no quoting or escaping, matching the legacy on-disk format exactly —
// a field value containing the delimiter or a newline corrupts column
// alignment, and the store does not try to prevent that.
package csvstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/monitoring"
)

// Delimiter separates fields within a row
const Delimiter = ","

// Store reads and writes delimited rows under a single base directory.
// A coarse per-file mutex serializes overlapping read-modify-write cycles
// within this process; observable semantics are unchanged from the
// lock-free original.
type Store struct {
	dataDir string
	logger  *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a store rooted at dataDir
func New(dataDir string, log *logger.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  log,
		locks:   make(map[string]*sync.Mutex),
	}
}

// DataDir returns the base directory of the store
func (s *Store) DataDir() string {
	return s.dataDir
}

// Path returns the file path for a named store
func (s *Store) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// ReadAll reads every row of the named store, splitting each line on the
// delimiter. A missing or empty store yields no rows and no error. The
// first row, when present, is the header; callers decide whether to skip
// it. I/O errors are returned for callers to log and degrade on — reads
// never fail outward at the repository surface.
func (s *Store) ReadAll(name string) ([][]string, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	f, err := os.Open(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			monitoring.RecordStoreRead(name, nil)
			return nil, nil
		}
		monitoring.RecordStoreRead(name, err)
		return nil, fmt.Errorf("failed to open store %s: %w", name, err)
	}
	defer f.Close()

	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, Delimiter))
	}

	if err := scanner.Err(); err != nil {
		monitoring.RecordStoreRead(name, err)
		return nil, fmt.Errorf("failed to read store %s: %w", name, err)
	}

	monitoring.RecordStoreRead(name, nil)
	s.logger.StoreOperation("read", name, len(rows), nil)
	return rows, nil
}

// WriteAll truncates the named store and rewrites it with the given rows,
// joining fields on the delimiter. The first row is expected to be the
// header.
func (s *Store) WriteAll(name string, rows [][]string) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	err := s.writeAll(name, rows)
	monitoring.RecordStoreWrite(name, err)
	s.logger.StoreOperation("write", name, len(rows), err)
	return err
}

func (s *Store) writeAll(name string, rows [][]string) error {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to create store %s: %w", name, err)
	}

	w := bufio.NewWriter(f)
	for _, row := range rows {
		if _, err := w.WriteString(strings.Join(row, Delimiter) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write store %s: %w", name, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush store %s: %w", name, err)
	}

	return f.Close()
}

// Append opens the named store in append mode and writes one additional row
func (s *Store) Append(name string, row []string) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	f, err := os.OpenFile(s.Path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		monitoring.RecordStoreWrite(name, err)
		return fmt.Errorf("failed to open store %s for append: %w", name, err)
	}

	_, err = f.WriteString(strings.Join(row, Delimiter) + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	monitoring.RecordStoreWrite(name, err)
	if err != nil {
		return fmt.Errorf("failed to append to store %s: %w", name, err)
	}
	return nil
}
