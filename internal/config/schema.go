package config

// schemaMap describes ft-patch.json. Unknown keys are rejected so typos
// surface as validation issues instead of silently using defaults.
func schemaMap() map[string]any {
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"patchDir": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"contextLines": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"maxLcsLines": map[string]any{
				"type":    "integer",
				"minimum": 1,
			},
			"exclude": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
			"color": map[string]any{
				"type": "string",
				"enum": []any{"auto", "always", "never"},
			},
		},
	}
}
