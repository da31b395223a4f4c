// Package contract pins the JSON shape of parse results. Downstream
// consumers (the merge/apply layer, exports) rely on this schema staying
// stable; the CLI validates its own output against it before writing.
package contract

import (
	"github.com/mmercade/shotplan/constants"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// parser Result, as a generic map.
func BuildResultJSONSchema() map[string]any {
	clock := map[string]any{"type": "string", "pattern": `^\d{2}:\d{2}$`}
	isoDate := map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}

	sequence := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"label":    map[string]any{"type": "string", "minLength": 1},
			"location": map[string]any{"type": "string"},
		},
		"required": []string{"id", "label"},
	}

	day := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"date":                    isoDate,
			"week_start":              isoDate,
			"day_index":               map[string]any{"type": "integer", "minimum": 0, "maximum": 6},
			"week_label":              map[string]any{"type": "string"},
			"sequences":               map[string]any{"type": "array", "items": sequence},
			"location_sequences_text": map[string]any{"type": "string"},
			"transport_text":          map[string]any{"type": "string"},
			"observations_text":       map[string]any{"type": "string"},
			"precall":                 clock,
			"crew_start":              clock,
			"crew_end":                clock,
			"crew_tipo": map[string]any{
				"type": "string",
				"enum": []string{constants.CrewTipoGeneral, constants.CrewTipoPersonalizado},
			},
		},
		"required": []string{"date", "week_start", "day_index", "sequences", "crew_tipo"},
	}

	week := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"start_date": isoDate,
			"label":      map[string]any{"type": "string"},
			"scope": map[string]any{
				"type": "string",
				"enum": []string{string(constants.ScopePre), string(constants.ScopePro)},
			},
			"days": map[string]any{
				"type": "object",
				"patternProperties": map[string]any{
					`^[0-6]$`: day,
				},
				"additionalProperties": false,
			},
		},
		"required": []string{"start_date", "scope", "days"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"weeks":    map[string]any{"type": "array", "items": week},
			"warnings": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"weeks", "warnings"},
	}
}
