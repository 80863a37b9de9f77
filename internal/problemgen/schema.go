package problemgen

import "github.com/abhisek/probgen/internal/llm"

func stringField(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// ProblemSchema is the JSON schema of GeneratedProblem sent to the provider
// as the structured output format. Every object is closed and every
// property required, as strict structured output demands.
var ProblemSchema = &llm.Schema{
	Name:        "programming-problem",
	Description: "A programming problem with test cases, solution templates and hints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem": map[string]any{
				"type":        "object",
				"description": "Core information about the problem",
				"properties": map[string]any{
					"id":          stringField("Unique identifier for the problem"),
					"title":       stringField("Title of the programming problem"),
					"description": stringField("Detailed description of the problem"),
					"difficulty":  stringField("Difficulty level of the problem"),
					"category":    stringField("Category or topic of the problem"),
					"tags":        stringList("List of tags associated with the problem"),
					"constraints": stringList("List of constraints for the problem, each a LaTeX fragment wrapped in $"),
				},
				"required":             []any{"id", "title", "description", "difficulty", "category", "tags", "constraints"},
				"additionalProperties": false,
			},
			"test_cases": map[string]any{
				"type":        "array",
				"description": "List of test cases for the problem",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input":           stringField("Input for the test case"),
						"expected_output": stringField("Expected output for the test case"),
						"is_hidden": map[string]any{
							"type":        "boolean",
							"description": "Whether the test case should be hidden from the user",
						},
					},
					"required":             []any{"input", "expected_output", "is_hidden"},
					"additionalProperties": false,
				},
			},
			"solution_templates": map[string]any{
				"type":        "array",
				"description": "Function signatures for the solution in multiple languages",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"language":           stringField("Programming language for the solution template"),
						"function_signature": stringField("Function signature for the solution"),
					},
					"required":             []any{"language", "function_signature"},
					"additionalProperties": false,
				},
			},
			"hints": stringList("Optional hints for solving the problem"),
			"time_limit": map[string]any{
				"type":        "number",
				"description": "Time limit for the solution in seconds",
			},
			"memory_limit": map[string]any{
				"type":        "number",
				"description": "Memory limit for the solution in megabytes",
			},
		},
		"required":             []any{"problem", "test_cases", "solution_templates", "hints", "time_limit", "memory_limit"},
		"additionalProperties": false,
	},
}
