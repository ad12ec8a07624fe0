package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

// catalogFile is the on-disk layout of a risk catalog
type catalogFile struct {
	Risks []eventEntry `yaml:"risks"`
}

type eventEntry struct {
	Code         string   `yaml:"code"`
	Name         string   `yaml:"name"`
	Probability  float64  `yaml:"probability"`
	Months       []int    `yaml:"months"`
	ImpactCost   *int64   `yaml:"impact_cost,omitempty"`
	ImpactTime   *float64 `yaml:"impact_time,omitempty"`
	ImpactSafety *float64 `yaml:"impact_safety,omitempty"`
	ImpactMorale *float64 `yaml:"impact_morale,omitempty"`
}

// LoadCatalogFile reads a YAML risk catalog. Every eligible month must lie
// within [1, lastMonth].
func LoadCatalogFile(path string, lastMonth int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk catalog: %w", err)
	}
	return ParseCatalog(data, lastMonth)
}

// ParseCatalog decodes a YAML risk catalog
func ParseCatalog(data []byte, lastMonth int) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse risk catalog: %w", err)
	}

	events := make([]*Event, 0, len(file.Risks))
	for _, entry := range file.Risks {
		e, err := NewEvent(entry.Code, entry.Name, entry.Probability, entry.Months, Impacts{
			Cost:   entry.ImpactCost,
			Time:   entry.ImpactTime,
			Safety: entry.ImpactSafety,
			Morale: entry.ImpactMorale,
		})
		if err != nil {
			return nil, err
		}
		if last := e.LastMonth(); last > lastMonth {
			return nil, shared.NewCatalogError(entry.Code, fmt.Sprintf("month %d beyond last month %d", last, lastMonth))
		}
		events = append(events, e)
	}

	return NewCatalog(events...)
}

// MarshalCatalog encodes a catalog in the same YAML layout ParseCatalog reads
func MarshalCatalog(c *Catalog) ([]byte, error) {
	file := catalogFile{Risks: make([]eventEntry, 0, c.Len())}
	for _, e := range c.Events() {
		impacts := e.Impacts()
		file.Risks = append(file.Risks, eventEntry{
			Code:         e.Code(),
			Name:         e.Name(),
			Probability:  e.Probability(),
			Months:       e.Months(),
			ImpactCost:   impacts.Cost,
			ImpactTime:   impacts.Time,
			ImpactSafety: impacts.Safety,
			ImpactMorale: impacts.Morale,
		})
	}
	return yaml.Marshal(&file)
}
