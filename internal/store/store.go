// Package store persists the prefix table and the phone book between runs
// as YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"psharma/arledger/internal/logging"

	"gopkg.in/yaml.v3"
)

// LedgerStore manages loading and saving of the prefix table and contacts.
type LedgerStore struct {
	PrefixesFile string
	ContactsFile string
	logger       logging.Logger
}

// NewLedgerStore creates a store for the given file names. Empty names fall
// back to the defaults prefixes.yaml and contacts.yaml.
func NewLedgerStore(prefixesFile, contactsFile string, logger logging.Logger) *LedgerStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LedgerStore{
		PrefixesFile: prefixesFile,
		ContactsFile: contactsFile,
		logger:       logger,
	}
}

// FindConfigFile looks for a data file in the standard locations.
func (s *LedgerStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "arledger", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadPrefixes loads the persisted prefix table. A missing file yields an
// empty table, not an error.
func (s *LedgerStore) LoadPrefixes() (map[string]string, error) {
	return s.loadMap(s.fileOrDefault(s.PrefixesFile, "prefixes.yaml"))
}

// SavePrefixes writes the prefix table back to disk.
func (s *LedgerStore) SavePrefixes(prefixes map[string]string) error {
	return s.saveMap(s.fileOrDefault(s.PrefixesFile, "prefixes.yaml"), prefixes)
}

// LoadContacts loads the party-name-to-phone-number book. A missing file
// yields an empty book, not an error.
func (s *LedgerStore) LoadContacts() (map[string]string, error) {
	return s.loadMap(s.fileOrDefault(s.ContactsFile, "contacts.yaml"))
}

// SaveContacts writes the phone book back to disk.
func (s *LedgerStore) SaveContacts(contacts map[string]string) error {
	return s.saveMap(s.fileOrDefault(s.ContactsFile, "contacts.yaml"), contacts)
}

func (s *LedgerStore) fileOrDefault(filename, fallback string) string {
	if filename == "" {
		return fallback
	}
	return filename
}

func (s *LedgerStore) loadMap(filename string) (map[string]string, error) {
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Data file not found, starting empty",
				logging.Field{Key: "file", Value: filename})
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- resolved from known locations
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filePath, err)
	}

	var mappings map[string]string
	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filePath, err)
	}
	if mappings == nil {
		mappings = map[string]string{}
	}

	s.logger.Debug("Loaded data file",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "entries", Value: len(mappings)})
	return mappings, nil
}

func (s *LedgerStore) saveMap(filename string, mappings map[string]string) error {
	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving %s: %w", filename, err)
	}
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		} else {
			filePath = filename
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(mappings)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filename, err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { // #nosec G306 -- shared data file
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}

	s.logger.Debug("Saved data file",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "entries", Value: len(mappings)})
	return nil
}
