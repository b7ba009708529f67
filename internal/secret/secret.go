// Package secret loads API keys and other sensitive values from a flat
// JSON file kept outside the data directory.
package secret

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSuchKey indicates the secret file exists but lacks the key.
var ErrNoSuchKey = errors.New("secret key not found")

// Load reads the whole secret file.
func Load(path string) (map[string]string, error) {
	if !strings.HasSuffix(path, ".json") {
		return nil, fmt.Errorf("expected a path to a .json file, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse secret file %s: %w", path, err)
	}
	return secrets, nil
}

// GetKey reads one key from the secret file.
func GetKey(path, key string) (string, error) {
	secrets, err := Load(path)
	if err != nil {
		return "", err
	}
	value, ok := secrets[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoSuchKey, key)
	}
	return value, nil
}
