// Package id generates prefixed identifiers for fetch runs and snapshots.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used across the application.
const (
	PrefixRun = "run"
)

// Generate creates a prefixed NanoID, e.g. "run-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewRunID returns an identifier for one fetch run.
func NewRunID() string {
	return MustGenerate(PrefixRun)
}
