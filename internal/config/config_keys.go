// config_keys.go provides key-value access to configuration settings for the
// CLI and MCP, where config is addressed by dotted keys such as
// "search.per_page". Optional numeric and boolean fields are pointers so
// "not set" and "set to zero/false" stay distinct.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/glossd/internal/query"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"database.driver", "database.dsn",
		"search.per_page", "search.whole_word", "search.aliases", "search.collection",
		"web.addr", "web.cors_origins", "web.title",
		"log.level", "log.format",
		"display.primary_color", "display.secondary_color",
		"display.highlight_color", "display.highlight_bg",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if !IsValidKey(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.All()[key], nil
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "database.driver":
		c.Database.Driver = strings.ToLower(value)
	case "database.dsn":
		c.Database.DSN = value
	case "search.per_page":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinPerPage || n > MaxPerPage {
			return fmt.Errorf("%w: search.per_page must be an integer between %d and %d", ErrInvalidValue, MinPerPage, MaxPerPage)
		}
		c.Search.PerPage = &n
	case "search.whole_word":
		s, err := query.ParseStrategy(value)
		if err != nil {
			return fmt.Errorf("%w: search.whole_word must be one of %v", ErrInvalidValue, query.Strategies)
		}
		c.Search.WholeWord = string(s)
	case "search.aliases":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: search.aliases must be true or false", ErrInvalidValue)
		}
		c.Search.Aliases = &b
	case "search.collection":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: search.collection must be a collection id (0 for none)", ErrInvalidValue)
		}
		c.Search.Collection = &n
	case "web.addr":
		c.Web.Addr = value
	case "web.cors_origins":
		c.Web.CORSOrigins = value
	case "web.title":
		c.Web.Title = value
	case "log.level":
		c.Log.Level = strings.ToLower(value)
	case "log.format":
		v := strings.ToLower(value)
		if v != "text" && v != "json" {
			return fmt.Errorf("%w: log.format must be text or json", ErrInvalidValue)
		}
		c.Log.Format = v
	case "display.primary_color", "display.secondary_color", "display.highlight_color", "display.highlight_bg":
		if !colourRe.MatchString(value) {
			return fmt.Errorf("%w: %s must be a hex colour like #0073e6", ErrInvalidValue, key)
		}
		switch key {
		case "display.primary_color":
			c.Display.PrimaryColor = value
		case "display.secondary_color":
			c.Display.SecondaryColor = value
		case "display.highlight_color":
			c.Display.HighlightColor = value
		default:
			c.Display.HighlightBg = value
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	colours := c.Colours()
	return map[string]string{
		"author.name":             c.Author.Name,
		"author.email":            c.Author.Email,
		"database.driver":         c.Driver(),
		"database.dsn":            c.Database.DSN,
		"search.per_page":         strconv.Itoa(c.PerPage()),
		"search.whole_word":       string(c.Strategy()),
		"search.aliases":          strconv.FormatBool(c.Aliases()),
		"search.collection":       strconv.FormatInt(c.PinnedCollection(), 10),
		"web.addr":                c.Addr(),
		"web.cors_origins":        c.Web.CORSOrigins,
		"web.title":               c.Title(),
		"log.level":               c.LogLevel(),
		"log.format":              c.LogFormat(),
		"display.primary_color":   colours.PrimaryColor,
		"display.secondary_color": colours.SecondaryColor,
		"display.highlight_color": colours.HighlightColor,
		"display.highlight_bg":    colours.HighlightBg,
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "database.driver":
		return c.Database.Driver != ""
	case "database.dsn":
		return c.Database.DSN != ""
	case "search.per_page":
		return c.Search.PerPage != nil
	case "search.whole_word":
		return c.Search.WholeWord != ""
	case "search.aliases":
		return c.Search.Aliases != nil
	case "search.collection":
		return c.Search.Collection != nil
	case "web.addr":
		return c.Web.Addr != ""
	case "web.cors_origins":
		return c.Web.CORSOrigins != ""
	case "web.title":
		return c.Web.Title != ""
	case "log.level":
		return c.Log.Level != ""
	case "log.format":
		return c.Log.Format != ""
	case "display.primary_color":
		return c.Display.PrimaryColor != ""
	case "display.secondary_color":
		return c.Display.SecondaryColor != ""
	case "display.highlight_color":
		return c.Display.HighlightColor != ""
	case "display.highlight_bg":
		return c.Display.HighlightBg != ""
	default:
		return false
	}
}
