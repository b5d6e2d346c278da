/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package generate

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"slidesmith/internal/domain"
)

// JSON schemas the model's answers must satisfy. Validation failures surface
// as errors to the caller; nothing partially-valid is ever applied.

var payloadSchemas = map[domain.ElementKind]string{
	domain.KindText: `{
		"type": "object",
		"required": ["content"],
		"properties": {
			"content": {"type": "string", "minLength": 1},
			"size":    {"enum": ["title", "heading", "body", "caption"]},
			"weight":  {"enum": ["normal", "bold"]},
			"color":   {"type": "string"},
			"align":   {"enum": ["left", "center", "right"]}
		}
	}`,
	domain.KindImage: `{
		"type": "object",
		"required": ["alt"],
		"properties": {
			"alt":    {"type": "string", "minLength": 1},
			"base64": {"type": "string"},
			"mime":   {"type": "string"}
		}
	}`,
	domain.KindIcon: `{
		"type": "object",
		"required": ["svg"],
		"properties": {
			"svg":   {"type": "string", "pattern": "<svg"},
			"color": {"type": "string"}
		}
	}`,
	domain.KindChart: `{
		"type": "object",
		"required": ["type", "labels", "values"],
		"properties": {
			"type":   {"enum": ["bar", "line", "pie"]},
			"labels": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"values": {"type": "array", "items": {"type": "number"}, "minItems": 1},
			"series": {"type": "string"}
		}
	}`,
}

const layoutSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "frame"],
		"additionalProperties": false,
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"frame": {
				"type": "object",
				"required": ["x", "y", "w", "h"],
				"properties": {
					"x": {"type": "number"},
					"y": {"type": "number"},
					"w": {"type": "number"},
					"h": {"type": "number"}
				}
			}
		}
	}
}`

func validatePayload(kind domain.ElementKind, raw string) error {
	return validateAgainst(payloadSchemas[kind], raw, string(kind)+" payload")
}

func validateLayout(raw string) error {
	return validateAgainst(layoutSchema, raw, "layout response")
}

func validateAgainst(schemaJSON, raw, what string) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("model returned invalid JSON for %s: %w", what, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("model %s failed validation: %s", what, strings.Join(msgs, "; "))
	}
	return nil
}
