package report

// Schema is the JSON Schema (Draft 2020-12) for the warnings JSON
// output. It documents the structure produced by the json renderer.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/featlint/featlint/warnings-report.schema.json",
  "title": "Featlint Warnings Report",
  "description": "Output schema for featlint analyze --format=json",
  "type": "object",
  "required": ["version", "warnings"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "warnings": {
      "type": "array",
      "items": { "$ref": "#/$defs/Warning" }
    }
  },
  "$defs": {
    "Warning": {
      "type": "object",
      "required": ["id", "kind", "severity", "message"],
      "properties": {
        "id": {
          "type": "string",
          "pattern": "^fw-[0-9a-f]{8}$"
        },
        "kind": {
          "type": "string",
          "description": "Stable machine-readable warning kind"
        },
        "severity": {
          "enum": ["error", "warning", "info"]
        },
        "message": {
          "type": "string"
        },
        "feature": {
          "type": "string",
          "description": "Feature file; absent for corpus-level warnings"
        },
        "scenario": {
          "type": "string"
        },
        "recommendations": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`

// TagSchema is the JSON Schema for the concordance JSON output of
// featlint tags --format=json.
const TagSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/featlint/featlint/tags-report.schema.json",
  "title": "Featlint Tag Report",
  "type": "object",
  "required": ["version", "total_occurrences", "unique_tags", "tags", "pairs", "orphans"],
  "properties": {
    "version": { "type": "string" },
    "total_occurrences": { "type": "integer", "minimum": 0 },
    "unique_tags": { "type": "integer", "minimum": 0 },
    "tags": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category", "count", "feature_spread", "significance"],
        "properties": {
          "name": { "type": "string" },
          "category": { "enum": ["priority", "type", "status", "other"] },
          "count": { "type": "integer", "minimum": 1 },
          "feature_spread": { "type": "integer", "minimum": 1 },
          "significance": { "type": "number" }
        }
      }
    },
    "pairs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["a", "b", "count", "jaccard"],
        "properties": {
          "a": { "type": "string" },
          "b": { "type": "string" },
          "count": { "type": "integer", "minimum": 1 },
          "jaccard": { "type": "number", "minimum": 0, "maximum": 1 }
        }
      }
    },
    "orphans": {
      "type": "array",
      "items": { "type": "string" }
    }
  }
}`
