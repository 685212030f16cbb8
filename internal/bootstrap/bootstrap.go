// Package bootstrap prepares the flat-file stores at process start: it
// creates the data directory and store files with their header rows, and
// seeds fixed demonstration records into empty stores so a clean checkout
// is immediately usable without manual data entry.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/mentcare/records/pkg/config"
	"github.com/mentcare/records/pkg/csvstore"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/repository"
)

// Bootstrapper ensures stores exist and optionally seeds sample data
type Bootstrapper struct {
	store   *csvstore.Store
	storage *config.StorageConfig
	logger  *logger.Logger
}

// New creates a bootstrapper over the given store
func New(store *csvstore.Store, storage *config.StorageConfig, log *logger.Logger) *Bootstrapper {
	return &Bootstrapper{
		store:   store,
		storage: storage,
		logger:  log,
	}
}

// Run creates missing store files with headers and, when seeding is
// enabled, writes the demonstration rows into stores that hold at most
// their header.
func (b *Bootstrapper) Run(seedSampleData bool) error {
	if err := os.MkdirAll(b.store.DataDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	headers := map[string][]string{
		b.storage.UsersFile:         repository.UserHeader,
		b.storage.PatientsFile:      repository.PatientHeader,
		b.storage.ConsultationsFile: repository.ConsultationHeader,
		b.storage.PrescriptionsFile: repository.PrescriptionHeader,
	}

	for file, header := range headers {
		if err := b.ensureStore(file, header); err != nil {
			return err
		}
	}

	if !seedSampleData {
		return nil
	}

	seeds := []struct {
		file   string
		header []string
		rows   [][]string
	}{
		{b.storage.UsersFile, repository.UserHeader, sampleUsers},
		{b.storage.PatientsFile, repository.PatientHeader, samplePatients},
		{b.storage.ConsultationsFile, repository.ConsultationHeader, sampleConsultations},
		{b.storage.PrescriptionsFile, repository.PrescriptionHeader, samplePrescriptions},
	}

	for _, seed := range seeds {
		if err := b.seedStore(seed.file, seed.header, seed.rows); err != nil {
			return err
		}
	}

	return nil
}

// ensureStore creates a store file containing just the header when the
// file is missing or zero-length
func (b *Bootstrapper) ensureStore(file string, header []string) error {
	info, err := os.Stat(b.store.Path(file))
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat store %s: %w", file, err)
	}

	if err := b.store.WriteAll(file, [][]string{header}); err != nil {
		return fmt.Errorf("failed to create store %s: %w", file, err)
	}

	b.logger.WithStore(file).Info("Created store file")
	return nil
}

// seedStore writes sample rows when the store holds at most its header
func (b *Bootstrapper) seedStore(file string, header []string, samples [][]string) error {
	rows, err := b.store.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read store %s: %w", file, err)
	}
	if len(rows) > 1 {
		return nil
	}

	out := [][]string{header}
	out = append(out, samples...)
	if err := b.store.WriteAll(file, out); err != nil {
		return fmt.Errorf("failed to seed store %s: %w", file, err)
	}

	b.logger.WithStore(file).WithField("rows", len(samples)).Info("Seeded sample data")
	return nil
}
