package config

//go:generate go tool go-enum --marshal --names --nocase --mustparse

// Specification of how style rules with conflicting declarations are handled.
// ENUM(scope, rewrite, first-wins, error)
type ConflictPolicy int

// Specification of declaration lists comparison.
// ENUM(symmetric, asymmetric)
type EqualityMode int

// Specification of discovered sources ordering.
// ENUM(lexical, natural)
type DiscoveryOrder int

// Specification of what to do with source which could not be processed.
// ENUM(abort, skip)
type ErrorPolicy int

func (p ErrorPolicy) Tolerant() bool {
	return p == ErrorPolicySkip
}
