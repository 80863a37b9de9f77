package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

const systemPrompt = "You are a helpful assistant that generates programming problems in a structured JSON format."

// buildInstruction renders the user message for a request. Every
// parameter appears verbatim.
func buildInstruction(req GenerationRequest) string {
	var b strings.Builder

	b.WriteString("Create a programming problem with the following specifications:\n")
	fmt.Fprintf(&b, "- Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "- Category: %s\n", req.Category)
	fmt.Fprintf(&b, "- Number of test cases: %d\n", req.NumTestCases)
	fmt.Fprintf(&b, "- Solution templates in: %s\n", strings.Join(req.Languages, ", "))
	fmt.Fprintf(&b, "- Time limit: %s seconds\n", formatFloat(req.TimeLimit))
	fmt.Fprintf(&b, "- Memory limit: %s MB\n", formatFloat(req.MemoryLimit))
	if req.AdditionalInstructions != nil && *req.AdditionalInstructions != "" {
		b.WriteString(*req.AdditionalInstructions)
		b.WriteString("\n")
	}

	b.WriteString(`
For the solution templates, provide ONLY the function signatures, not the full implementation.
For example:
- Python: def solve_problem(input_data):
- Java: public static String solveProblem(String inputData) {
- C++: string solveProblem(string inputData) {

Write every constraint as a LaTeX fragment wrapped in $, for example $1 \le n \le 10^5$.

Provide your response as a JSON object.
`)

	return b.String()
}

// formatFloat prints whole numbers with a trailing ".0" so limits read
// "1.0 seconds" and "256.0 MB".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}
