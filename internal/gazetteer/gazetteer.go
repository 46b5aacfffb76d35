// Package gazetteer maps place names to latitudes. It is the input feed for
// the day-length engine; the engine itself only ever sees latitudes.
package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPlace is returned when a name is not in the gazetteer.
	ErrUnknownPlace = errors.New("unknown place")

	// ErrInvalidLatitude is returned when a table entry is outside [-90, 90].
	ErrInvalidLatitude = errors.New("invalid latitude")

	// ErrEmptyName is returned for a blank place name.
	ErrEmptyName = errors.New("empty place name")
)

// Place is a display name with its latitude in degrees.
type Place struct {
	Name     string
	Latitude float64
}

// Source resolves place names to latitudes in degrees.
type Source interface {
	Lookup(ctx context.Context, name string) (float64, error)
	// Resolve is Lookup that also returns the stored spelling of the name.
	Resolve(ctx context.Context, name string) (Place, error)
	Names(ctx context.Context) ([]string, error)
}

// Store is a Source that also accepts new places.
type Store interface {
	Source
	Put(ctx context.Context, name string, lat float64) error
}

// Table is an in-memory gazetteer. Lookups ignore case and surrounding space.
type Table struct {
	latitudes map[string]float64 // key: normalized name
	names     map[string]string  // key: normalized name, value: display name
}

// NewTable builds a Table from display names to latitudes.
func NewTable(places map[string]float64) (*Table, error) {
	t := &Table{
		latitudes: make(map[string]float64, len(places)),
		names:     make(map[string]string, len(places)),
	}
	for name, lat := range places {
		if err := t.add(name, lat); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(name string, lat float64) error {
	name, err := checkPlace(name, lat)
	if err != nil {
		return err
	}
	key := normalize(name)
	t.latitudes[key] = lat
	t.names[key] = name
	return nil
}

// Lookup implements Source.
func (t *Table) Lookup(_ context.Context, name string) (float64, error) {
	lat, ok := t.latitudes[normalize(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
	}
	return lat, nil
}

// Resolve implements Source.
func (t *Table) Resolve(ctx context.Context, name string) (Place, error) {
	lat, err := t.Lookup(ctx, name)
	if err != nil {
		return Place{}, err
	}
	return Place{Name: t.Canonical(name), Latitude: lat}, nil
}

// Names implements Source. Names are sorted alphabetically.
func (t *Table) Names(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(t.names))
	for _, n := range t.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Canonical returns the display spelling of name, or name itself if unknown.
func (t *Table) Canonical(name string) string {
	if n, ok := t.names[normalize(name)]; ok {
		return n
	}
	return name
}

// Places returns a copy of the table as display name -> latitude.
func (t *Table) Places() map[string]float64 {
	out := make(map[string]float64, len(t.latitudes))
	for key, lat := range t.latitudes {
		out[t.names[key]] = lat
	}
	return out
}

// Merge returns a new Table holding t's places overridden by other's.
func (t *Table) Merge(other *Table) *Table {
	merged := &Table{
		latitudes: make(map[string]float64, len(t.latitudes)+len(other.latitudes)),
		names:     make(map[string]string, len(t.names)+len(other.names)),
	}
	for _, src := range []*Table{t, other} {
		for key, lat := range src.latitudes {
			merged.latitudes[key] = lat
			merged.names[key] = src.names[key]
		}
	}
	return merged
}

type yamlFile struct {
	Places map[string]float64 `yaml:"places"`
}

// LoadYAML reads a table from a YAML file of the form
//
//	places:
//	  Hamburg: 53.55
//	  Equator: 0
func LoadYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML is LoadYAML for in-memory data.
func ParseYAML(data []byte) (*Table, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse gazetteer file: %w", err)
	}
	return NewTable(f.Places)
}

// checkPlace trims name and validates both fields.
func checkPlace(name string, lat float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return "", fmt.Errorf("%w: %s=%v", ErrInvalidLatitude, name, lat)
	}
	return name, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
