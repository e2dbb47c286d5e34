package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

// ReadProperties parses a flat KEY = VALUE file. Blank lines, lines starting
// with '#' and lines without '=' are skipped; only the first '=' splits.
// When lowerKeys is set, keys are lower-cased so lookups are case-insensitive.
func ReadProperties(path string, lowerKeys bool) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfig, "read properties", err)
	}
	defer f.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if lowerKeys {
			key = strings.ToLower(key)
		}
		props[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrConfig, "scan properties", fmt.Errorf("%s: %w", path, err))
	}
	return props, nil
}

// Error reports a single bad configuration key.
type Error struct {
	Path   string
	Key    string
	Reason string
	Value  string
}

func (e *Error) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config %s: %s: %s (%q)", e.Path, e.Reason, e.Key, e.Value)
	}
	return fmt.Sprintf("config %s: %s: %s", e.Path, e.Reason, e.Key)
}

func (e *Error) Unwrap() error { return domain.ErrConfig }

const (
	reasonMissingKey    = "missing key"
	reasonInvalidNumber = "invalid number"
)
