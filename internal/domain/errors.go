package domain

import "fmt"

// LoadError reports a document that could not be parsed or contained no
// extractable text. Fatal to that document only.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %v", e.Location, e.Err)
	}
	return fmt.Sprintf("load %s: no extractable content", e.Location)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EmbeddingError reports a failed remote embedding call. Fatal to the
// current build or retrieve operation; no partial index survives it.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// EmptyIndexError reports a query against an index holding zero
// segments. Recoverable: the synthesizer answers with the fixed
// no-content message instead of calling the model.
type EmptyIndexError struct{}

func (e *EmptyIndexError) Error() string {
	return "index holds no segments"
}

// SynthesisError reports a failed remote chat call. Fatal to the
// current query only; the index stays valid for the next one.
type SynthesisError struct {
	Stage string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis (%s): %v", e.Stage, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
