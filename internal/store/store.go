// Package store loads operator-maintained header aliases from YAML so a newly
// renamed spreadsheet column can be accepted without a rebuild.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultAliasesFile is looked up when no explicit file is configured.
const DefaultAliasesFile = "columns.yaml"

// AliasesConfig is the document layout:
//
//	columns:
//	  prooflink: ["Bank Slip", "Voucher"]
//	  image: ["Hero Image"]
type AliasesConfig struct {
	Columns map[string][]string `yaml:"columns"`
}

// AliasStore reads alias overrides from a YAML file.
type AliasStore struct {
	File   string
	logger logging.Logger
}

// NewAliasStore creates a store for file (DefaultAliasesFile when empty).
func NewAliasStore(file string, logger logging.Logger) *AliasStore {
	if file == "" {
		file = DefaultAliasesFile
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &AliasStore{File: file, logger: logger}
}

// FindConfigFile looks for filename in the usual locations.
func (s *AliasStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".relief-ledger", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadAliases returns the configured overrides keyed by canonical field. A
// missing file is not an error and yields no overrides.
func (s *AliasStore) LoadAliases() (map[string][]string, error) {
	path, err := s.FindConfigFile(s.File)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("No column alias file found, using built-in aliases",
			logging.F(logging.FieldPath, s.File))
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving alias file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading alias file: %w", err)
	}

	var cfg AliasesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing alias file %s: %w", path, err)
	}

	// a bare mapping without the top-level key is accepted too
	if len(cfg.Columns) == 0 {
		var bare map[string][]string
		if err := yaml.Unmarshal(data, &bare); err == nil {
			cfg.Columns = bare
		}
	}

	s.logger.Info("Loaded column aliases",
		logging.F(logging.FieldPath, path),
		logging.F(logging.FieldCount, len(cfg.Columns)))
	return cfg.Columns, nil
}

// Table returns the built-in table merged with the file's overrides.
func (s *AliasStore) Table() (columns.Table, error) {
	extra, err := s.LoadAliases()
	if err != nil {
		return nil, err
	}
	return columns.DefaultTable().Merge(extra), nil
}

// WriteTable writes table in the same layout LoadAliases reads, fields sorted.
func WriteTable(w io.Writer, table columns.Table) error {
	fields := make([]string, 0, len(table))
	for field := range table {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range fields {
		var aliases yaml.Node
		if err := aliases.Encode(table[field]); err != nil {
			return fmt.Errorf("error encoding aliases for %s: %w", field, err)
		}
		aliases.Style = yaml.FlowStyle
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: field},
			&aliases)
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "columns"},
		node,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error writing alias table: %w", err)
	}
	return enc.Close()
}
