// Package verbclass parses the class-metadata dataset: a JSON object that
// maps a verb class name to its conjugation endings.
package verbclass

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalClasses     int
	MalformedClasses int
}

// Parse decodes the dataset. A class whose value is not an endings object
// is dropped; a top level that is not an object fails the source.
func Parse(data []byte) (map[string]domain.VerbClassInfo, Stats, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Stats{}, fmt.Errorf("decode class json: %w", err)
	}

	stats := Stats{TotalClasses: len(raw)}
	classes := make(map[string]domain.VerbClassInfo, len(raw))

	for name, body := range raw {
		var info domain.VerbClassInfo
		if err := json.Unmarshal(body, &info); err != nil {
			stats.MalformedClasses++
			continue
		}
		classes[strings.TrimSpace(name)] = info
	}

	return classes, stats, nil
}
