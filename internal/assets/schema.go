package assets

import "github.com/santhosh-tekuri/jsonschema/v5"

const catalogSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["meshes", "areas"],
  "properties": {
    "meshes": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["primitive", "size"],
        "properties": {
          "primitive": {"enum": ["cube", "sphere", "model"]},
          "model": {"type": "string"},
          "size": {"$ref": "#/definitions/vec3"},
          "color": {"type": "string"},
          "shape": {"enum": ["box", "sphere", "none"]},
          "mass": {"type": "number", "minimum": 0},
          "bounce": {"type": "number", "minimum": 0, "maximum": 1},
          "friction": {"type": "number", "minimum": 0},
          "kinematic": {"type": "boolean"}
        },
        "additionalProperties": false
      }
    },
    "areas": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["objects"],
        "properties": {
          "title": {"type": "string"},
          "sky": {
            "type": "object",
            "properties": {
              "game_angle": {"type": "number"},
              "game_y_offset": {"type": "number"},
              "game_d_offset": {"type": "number"},
              "game_tilt": {"type": "array", "items": {"type": "number"}, "minItems": 4, "maxItems": 4},
              "t3_angle": {"type": "number"}
            },
            "additionalProperties": false
          },
          "objects": {"$ref": "#/definitions/objects"}
        },
        "additionalProperties": false
      }
    },
    "missions": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["area", "objects"],
        "properties": {
          "title": {"type": "string"},
          "area": {"type": "string"},
          "objects": {"$ref": "#/definitions/objects"},
          "control": {
            "type": "object",
            "properties": {
              "briefing": {"type": "string"},
              "briefing_steps": {"type": "integer", "minimum": 0},
              "objectives": {"type": "array", "items": {"type": "string"}},
              "reach_radius": {"type": "number", "exclusiveMinimum": 0},
              "time_limit_steps": {"type": "integer", "minimum": 0}
            },
            "additionalProperties": false
          }
        },
        "additionalProperties": false
      }
    }
  },
  "definitions": {
    "vec3": {"type": "array", "items": {"type": "number"}, "minItems": 3, "maxItems": 3},
    "objects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "name", "mesh", "position"],
        "properties": {
          "kind": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "mesh": {"type": "string"},
          "position": {"$ref": "#/definitions/vec3"},
          "rotation": {"$ref": "#/definitions/vec3"},
          "props": {"type": "object", "additionalProperties": {"type": "number"}}
        },
        "additionalProperties": false
      }
    }
  }
}`

var catalogSchema = jsonschema.MustCompileString("catalog.schema.json", catalogSchemaJSON)
