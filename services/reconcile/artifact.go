package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteGaps saves a classified gap list so the research and apply steps
// can run as separate invocations.
func WriteGaps(path string, gaps []Gap) error {
	data, err := json.MarshalIndent(gaps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadGaps(path string) ([]Gap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gaps []Gap
	if err := json.Unmarshal(data, &gaps); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return gaps, nil
}
