package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"barterbench/internal/core"
)

// definitionSchemaJSON validates a StrategyDefinition's name, version,
// main_timeframe and risk block (each policy must name a type) before
// construction; parameters are not checked. It surfaces ErrInvalidArgument with a precise
// pointer on mismatch. The strategy composition's "versioned,
// JSON-parameterized" definition is schema-validated the way the teacher's
// config layer validates nested config blocks in internal/config/validation.go,
// using a dependency the teacher's go.mod already carries.
const definitionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "version", "main_timeframe", "risk"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "minimum": 1},
    "main_timeframe": {"type": "string"},
    "risk": {
      "type": "object",
      "required": ["stop_loss", "take_profit", "position_sizing"],
      "properties": {
        "stop_loss": {"type": "object", "required": ["type"]},
        "take_profit": {"type": "object", "required": ["type"]},
        "position_sizing": {"type": "object", "required": ["type"]}
      }
    }
  }
}`

var compiledDefinitionSchema = mustCompileDefinitionSchema()

func mustCompileDefinitionSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("strategy_definition.json", strings.NewReader(definitionSchemaJSON)); err != nil {
		panic(fmt.Sprintf("strategy: invalid embedded definition schema: %v", err))
	}
	schema, err := compiler.Compile("strategy_definition.json")
	if err != nil {
		panic(fmt.Sprintf("strategy: failed to compile embedded definition schema: %v", err))
	}
	return schema
}

// ValidateDefinitionJSON validates a raw JSON strategy definition document
// against the schema before it is decoded into core.StrategyDefinition.
func ValidateDefinitionJSON(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: invalid strategy definition JSON: %v", core.ErrInvalidArgument, err)
	}
	if err := compiledDefinitionSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidArgument, err)
	}
	return nil
}
