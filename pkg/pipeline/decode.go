package pipeline

import (
	"fmt"

	"github.com/matzehuels/deckgen/pkg/deck"
)

// Decode parses the configured input into a validated payload.
// Inline payload bytes win over an input path when both are set.
// Errors from the payload parser carry their codes unchanged so callers
// can map them to user-facing responses.
func Decode(opts Options) (*deck.Payload, error) {
	if len(opts.Payload) > 0 {
		return deck.Parse(opts.Payload)
	}
	if opts.InputPath != "" {
		return deck.ParseFile(opts.InputPath)
	}
	return nil, fmt.Errorf("no payload configured")
}
