package handlers

import (
	"github.com/dhima/time-machine/internal/api/response"
	"github.com/xeipuuv/gojsonschema"
)

const travelSchema = `{
	"type": "object",
	"properties": {
		"destination": {"type": ["string", "number"], "minLength": 1},
		"tick": {"type": "boolean"}
	},
	"required": ["destination"],
	"additionalProperties": false
}`

const shiftSchema = `{
	"type": "object",
	"properties": {
		"seconds": {"type": "number"},
		"duration": {"type": "string", "minLength": 1}
	},
	"oneOf": [
		{"required": ["seconds"]},
		{"required": ["duration"]}
	],
	"additionalProperties": false
}`

const cronSchema = `{
	"type": "object",
	"properties": {
		"cron": {"type": "string", "minLength": 1},
		"timezone": {"type": "string"}
	},
	"required": ["cron"],
	"additionalProperties": false
}`

var (
	travelRequestSchema = mustSchema(travelSchema)
	shiftRequestSchema  = mustSchema(shiftSchema)
	cronRequestSchema   = mustSchema(cronSchema)
)

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(err)
	}
	return schema
}

// validateBody checks body against schema. It returns the field errors, or
// an error when body is not JSON at all.
func validateBody(schema *gojsonschema.Schema, body []byte) ([]response.ValidationError, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]response.ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, response.ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return errs, nil
}
