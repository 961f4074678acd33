package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadAPIKey reads the API key stored in path. Surrounding whitespace,
// including the trailing newline editors add, is stripped.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "config: read api key file %s", path)
	}
	return strings.TrimSpace(string(data)), nil
}
