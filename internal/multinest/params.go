package multinest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// WriteParamNames stores the parameter names of a run as
// <basename>params.json, a JSON array indented by two spaces. Columns of
// the sampler's output files follow the same order.
func WriteParamNames(basename string, names []string) error {
	if names == nil {
		names = []string{}
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode parameter names: %w", err)
	}

	path := basename + ParamsSuffix
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	// 0644 matches the permissions the sampler uses for its own files.
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadParamNames loads <basename>params.json. Comments and trailing commas
// are tolerated, since the file is often annotated by hand.
func ReadParamNames(basename string) ([]string, error) {
	path := basename + ParamsSuffix
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter names: %w", err)
	}

	var names []string
	if err := json.Unmarshal(jsonc.ToJSON(data), &names); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return names, nil
}
