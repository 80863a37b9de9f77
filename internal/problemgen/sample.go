package problemgen

import "encoding/json"

// SampleProblem is a complete GeneratedProblem in wire form. The mock
// provider serves it for local runs without an API key.
var SampleProblem = json.RawMessage(`{
  "problem": {
    "id": "sample",
    "title": "Sort Colors",
    "description": "Given an array of integers where each value is 0, 1 or 2, sort it in place so equal values are adjacent and appear in the order 0, 1, 2.",
    "difficulty": "medium",
    "category": "sorting algorithms",
    "tags": ["arrays", "sorting", "two pointers"],
    "constraints": ["$1 \\le n \\le 300$", "$a_i \\in \\{0, 1, 2\\}$"]
  },
  "test_cases": [
    {"input": "2 0 2 1 1 0", "expected_output": "0 0 1 1 2 2", "is_hidden": false},
    {"input": "2 0 1", "expected_output": "0 1 2", "is_hidden": false},
    {"input": "0", "expected_output": "0", "is_hidden": true}
  ],
  "solution_templates": [
    {"language": "Python", "function_signature": "def sort_colors(nums: list[int]) -> None:"},
    {"language": "Java", "function_signature": "public static void sortColors(int[] nums) {"},
    {"language": "C++", "function_signature": "void sortColors(vector<int>& nums) {"}
  ],
  "hints": ["Keep three regions: zeros, ones and unknown.", "A single pass with three pointers is enough."],
  "time_limit": 1.0,
  "memory_limit": 256.0
}`)
