package generator

import (
	"fmt"
)

// GenerationCapabilityError marks a failed LLM call: network error, malformed
// or non-JSON response, or structurally incomplete output. Recovered at the
// candidate level.
type GenerationCapabilityError struct {
	Reason string
	Err    error
}

func (e *GenerationCapabilityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation capability failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation capability failed: %s", e.Reason)
}

func (e *GenerationCapabilityError) Unwrap() error {
	return e.Err
}

// DuplicateArticleError marks a candidate whose output collides with a
// recently published article, either by slug or by title keyword overlap.
type DuplicateArticleError struct {
	Slug          string
	ConflictsWith string
}

func (e *DuplicateArticleError) Error() string {
	return fmt.Sprintf("duplicate article %s conflicts with %s", e.Slug, e.ConflictsWith)
}

// PersistenceError marks a database write failure for one candidate. The
// transactional bundle guarantees no partial rows were left behind.
type PersistenceError struct {
	Slug string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("fail to persist article %s: %v", e.Slug, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
