package problemgen

import "context"

// Generator produces programming problems.
type Generator interface {
	// Generate runs one prompt → completion → id assignment cycle.
	// It returns ErrGenerationFailed when the provider produced no usable
	// object, or the provider's own error unchanged.
	Generate(ctx context.Context, req GenerationRequest) (*GeneratedProblem, error)
}
