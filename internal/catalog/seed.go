package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout of a menu seed.
type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Available   *bool  `yaml:"available"`
}

// Seed loads items from a YAML file when the catalog is empty. It returns the
// number of items added; a non-empty catalog is left alone.
func (c *Catalog) Seed(ctx context.Context, path string) (int, error) {
	c.mu.RLock()
	existing := len(c.items)
	c.mu.RUnlock()
	if existing > 0 {
		c.logger.Debug("Menu already populated, skipping seed", "items", existing)
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read menu seed: %w", err)
	}
	inputs, err := parseSeed(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse menu seed %s: %w", path, err)
	}

	for _, in := range inputs {
		if _, err := c.Add(ctx, in); err != nil {
			return 0, fmt.Errorf("failed to seed menu item %q: %w", in.Name, err)
		}
	}
	c.logger.Info("Menu seeded", "path", path, "items", len(inputs))
	return len(inputs), nil
}

func parseSeed(data []byte) ([]MenuItemInput, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	inputs := make([]MenuItemInput, 0, len(file.Items))
	for i, item := range file.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid price %q: %w", i, item.Price, err)
		}
		inputs = append(inputs, MenuItemInput{
			Name:        item.Name,
			Price:       price,
			Category:    item.Category,
			Description: item.Description,
			IsAvailable: item.Available,
		})
	}
	return inputs, nil
}
