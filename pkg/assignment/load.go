package assignment

import (
	"encoding/json"
	"fmt"
	"os"
)

// batchItem is the on-disk shape of one entry in a batch file. It mirrors
// Spec but tolerates the nested assignment_details block some exports use
// for the question text.
type batchItem struct {
	Spec
	Details struct {
		Question string `json:"question"`
	} `json:"assignment_details"`
}

// LoadFile reads an ordered batch of assignment specs from a JSON file.
// The file must contain a JSON array; ordering is preserved. Entries are
// not validated here, so a batch with one bad entry still loads and the
// bad entry fails at planning time instead of sinking the whole file.
func LoadFile(path string) ([]Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var items []batchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}

	specs := make([]Spec, 0, len(items))
	for _, item := range items {
		spec := item.Spec
		if spec.QuestionText == "" {
			spec.QuestionText = item.Details.Question
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
