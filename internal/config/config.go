package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/config/configloader"
)

// AppName prefixes environment variables: INVENTORY_INVENTORY_FILE, INVENTORY_LOG_LEVEL, ...
const AppName = "inventory"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Inventory InventoryConfig  `koanf:"inventory"`
	Display   DisplayConfig    `koanf:"display"`
	Log       config.LogConfig `koanf:"log"`
}

type InventoryConfig struct {
	File string `koanf:"file"`
}

type DisplayConfig struct {
	Locale string `koanf:"locale"`
	Color  bool   `koanf:"color"`
}

// Defaults returns the values used when neither files nor environment set a key.
func Defaults() map[string]any {
	return map[string]any{
		"inventory.file": "db_products.csv",
		"display.locale": "sv-SE",
		"display.color":  true,
		"log.level":      "warn",
		"log.format":     "text",
		"log.file":       "",
	}
}

// Load reads the configuration using the standard layering.
func Load() (*Config, error) {
	return configloader.Load[*Config](AppName, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Inventory ---\n")
	b.WriteString(fmt.Sprintf("  inventory.file: %s\n", c.Inventory.File))

	b.WriteString("\n--- Display ---\n")
	b.WriteString(fmt.Sprintf("  display.locale: %s\n", c.Display.Locale))
	b.WriteString(fmt.Sprintf("  display.color: %t\n", c.Display.Color))

	b.WriteString(c.Log.String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Inventory.File) == "" {
		return fmt.Errorf("inventory file is not configured")
	}
	if strings.TrimSpace(c.Display.Locale) == "" {
		return fmt.Errorf("display locale is not configured")
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}
