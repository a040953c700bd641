package dataset

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Dataset is one downloadable input of the tutorial.
type Dataset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	// Archive format; empty means detect from the URL.
	Archive Kind `yaml:"archive"`
	// Optional hex SHA-256 of the downloaded file.
	SHA256 string `yaml:"sha256,omitempty"`
	// Extraction directory relative to the session directory.
	Dest string `yaml:"dest,omitempty"`
}

// FileName is the name the download is stored under.
func (d Dataset) FileName() string {
	u, err := url.Parse(d.URL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return d.Name
	}
	return path.Base(u.Path)
}

// Kind returns the archive format, detecting it from the URL if unset.
func (d Dataset) Kind() Kind {
	if d.Archive != "" {
		return d.Archive
	}
	return DetectKind(d.FileName())
}

// Catalog is an ordered list of datasets addressable by name.
type Catalog struct {
	Datasets []Dataset `yaml:"datasets"`
}

// DefaultCatalog returns the built-in tutorial catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file, or the built-in catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a catalog from YAML and checks every entry for a
// name, a URL and a supported archive kind.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, d := range c.Datasets {
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDataset, d.Name)
		}
		seen[d.Name] = true
		if d.URL == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingURL, d.Name)
		}
		if !d.Kind().Valid() {
			return nil, fmt.Errorf("%s: %w: %q", d.Name, ErrUnsupportedArchive, d.Archive)
		}
	}
	return &c, nil
}

// Lookup returns the dataset called name, or ErrUnknownDataset.
func (c *Catalog) Lookup(name string) (Dataset, error) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
}

// Names returns the dataset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Datasets))
	for _, d := range c.Datasets {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
