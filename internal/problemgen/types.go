package problemgen

import "encoding/json"

// Default generation parameters, applied to any field the caller leaves
// out or sets to null.
const (
	DefaultDifficulty   = "medium"
	DefaultCategory     = "sorting algorithms"
	DefaultNumTestCases = 3
	DefaultTimeLimit    = 1.0
	DefaultMemoryLimit  = 256.0
)

// DefaultLanguages returns the solution template languages used when the
// request names none. A fresh slice is returned on every call.
func DefaultLanguages() []string {
	return []string{"Python", "Java", "C++"}
}

// GenerationRequest describes the problem the caller wants.
type GenerationRequest struct {
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category"`
	NumTestCases int      `json:"num_test_cases"`
	Languages    []string `json:"languages"`

	// TimeLimit is in seconds, MemoryLimit in megabytes.
	TimeLimit   float64 `json:"time_limit"`
	MemoryLimit float64 `json:"memory_limit"`

	// AdditionalInstructions is appended to the prompt verbatim when set.
	AdditionalInstructions *string `json:"additional_instructions,omitempty"`
}

// DefaultRequest returns a GenerationRequest with every field defaulted.
func DefaultRequest() GenerationRequest {
	return GenerationRequest{
		Difficulty:   DefaultDifficulty,
		Category:     DefaultCategory,
		NumTestCases: DefaultNumTestCases,
		Languages:    DefaultLanguages(),
		TimeLimit:    DefaultTimeLimit,
		MemoryLimit:  DefaultMemoryLimit,
	}
}

// requestBody is the wire form of GenerationRequest. Pointers tell an
// absent or null key apart from an explicit zero value.
type requestBody struct {
	Difficulty             *string   `json:"difficulty"`
	Category               *string   `json:"category"`
	NumTestCases           *int      `json:"num_test_cases"`
	Languages              *[]string `json:"languages"`
	TimeLimit              *float64  `json:"time_limit"`
	MemoryLimit            *float64  `json:"memory_limit"`
	AdditionalInstructions *string   `json:"additional_instructions"`
}

// UnmarshalJSON decodes a request body, filling defaults for missing keys.
func (r *GenerationRequest) UnmarshalJSON(data []byte) error {
	var in requestBody
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := DefaultRequest()
	if in.Difficulty != nil {
		out.Difficulty = *in.Difficulty
	}
	if in.Category != nil {
		out.Category = *in.Category
	}
	if in.NumTestCases != nil {
		out.NumTestCases = *in.NumTestCases
	}
	if in.Languages != nil {
		out.Languages = *in.Languages
	}
	if in.TimeLimit != nil {
		out.TimeLimit = *in.TimeLimit
	}
	if in.MemoryLimit != nil {
		out.MemoryLimit = *in.MemoryLimit
	}
	out.AdditionalInstructions = in.AdditionalInstructions

	*r = out
	return nil
}

// Problem is the core statement of a generated exercise.
type Problem struct {
	// ID is always assigned by the generator; the model's value is discarded.
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`

	// Constraints are LaTeX fragments wrapped in $...$.
	Constraints []string `json:"constraints"`
}

// TestCase is one input/expected-output pair.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

// SolutionTemplate holds a function signature, without a body, for one
// language.
type SolutionTemplate struct {
	Language          string `json:"language"`
	FunctionSignature string `json:"function_signature"`
}

// GeneratedProblem is the structured object requested from the model and
// returned to the caller.
type GeneratedProblem struct {
	Problem           Problem            `json:"problem"`
	TestCases         []TestCase         `json:"test_cases"`
	SolutionTemplates []SolutionTemplate `json:"solution_templates"`
	Hints             []string           `json:"hints"`
	TimeLimit         float64            `json:"time_limit"`
	MemoryLimit       float64            `json:"memory_limit"`
}

// normalize replaces nil slices so they serialize as [] rather than null.
func (g *GeneratedProblem) normalize() {
	if g.Problem.Tags == nil {
		g.Problem.Tags = []string{}
	}
	if g.Problem.Constraints == nil {
		g.Problem.Constraints = []string{}
	}
	if g.TestCases == nil {
		g.TestCases = []TestCase{}
	}
	if g.SolutionTemplates == nil {
		g.SolutionTemplates = []SolutionTemplate{}
	}
	if g.Hints == nil {
		g.Hints = []string{}
	}
}
