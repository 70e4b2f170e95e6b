package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// RC is optional per-user REPL preferences read from ~/.kvwalrc, written
// as JSON-with-comments so it can be hand-edited.
type RC struct {
	Prompt      string `json:"prompt,omitempty"`
	HistoryFile string `json:"history_file,omitempty"`
}

// LoadRC reads and standardizes path as JSONC. A missing file yields a
// zero RC and no error.
func LoadRC(path string) (RC, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RC{}, nil
		}
		return RC{}, fmt.Errorf("cli: read %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return RC{}, fmt.Errorf("cli: invalid jsonc in %s: %w", path, err)
	}

	var rc RC
	if err := json.Unmarshal(standardized, &rc); err != nil {
		return RC{}, fmt.Errorf("cli: invalid json in %s: %w", path, err)
	}
	return rc, nil
}
