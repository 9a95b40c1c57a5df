package lookup

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/inoxlang/scriptc/internal/utils"
)

const DESCRIPTION_SCHEMA_URL = "whitelist.schema.json"

const descriptionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version", "classes"],
	"additionalProperties": false,
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"requires": {"type": "string"},
		"classes": {
			"type": "array",
			"items": {"$ref": "#/definitions/class"}
		}
	},
	"definitions": {
		"typeName": {"type": "string", "minLength": 1},
		"typeNames": {"type": "array", "items": {"$ref": "#/definitions/typeName"}},
		"method": {
			"type": "object",
			"required": ["name"],
			"additionalProperties": false,
			"properties": {
				"name": {"type": "string", "pattern": "^[A-Za-z_$][A-Za-z0-9_$]*$"},
				"params": {"anyOf": [{"$ref": "#/definitions/typeNames"}, {"type": "null"}]},
				"returns": {"$ref": "#/definitions/typeName"}
			}
		},
		"class": {
			"type": "object",
			"required": ["name"],
			"additionalProperties": false,
			"properties": {
				"name": {"type": "string", "pattern": "^[A-Za-z_$][A-Za-z0-9_$]*$"},
				"extends": {"$ref": "#/definitions/typeName"},
				"constructors": {
					"type": "array",
					"items": {
						"type": "object",
						"additionalProperties": false,
						"properties": {
							"params": {"anyOf": [{"$ref": "#/definitions/typeNames"}, {"type": "null"}]}
						}
					}
				},
				"methods": {"type": "array", "items": {"$ref": "#/definitions/method"}},
				"static_methods": {"type": "array", "items": {"$ref": "#/definitions/method"}}
			}
		}
	}
}`

var compiledDescriptionSchema = compileDescriptionSchema()

func compileDescriptionSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	utils.PanicIfErr(compiler.AddResource(DESCRIPTION_SCHEMA_URL, strings.NewReader(descriptionSchema)))
	return utils.Must(compiler.Compile(DESCRIPTION_SCHEMA_URL))
}

// ValidateDescription checks the shape of a whitelist document against the description schema,
// unknown fields and misspelled keys are reported before any type is resolved.
func ValidateDescription(data []byte, format Format) error {
	if format == YAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("failed to parse whitelist description (%s): %w", format, err)
		}
		data = converted
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("failed to parse whitelist description (%s): %w", format, err)
	}

	if err := compiledDescriptionSchema.Validate(document); err != nil {
		return fmt.Errorf("invalid whitelist description: %w", err)
	}
	return nil
}
