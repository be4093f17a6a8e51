package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/constructs-go/constructs/v10"
)

// Variant selects which resource bindings the stack declares.
type Variant string

const (
	// VariantBasic declares the service and the distribution on its default domain.
	VariantBasic Variant = "basic"
	// VariantCustomDomain adds the certificate, the edge function and the alias records.
	VariantCustomDomain Variant = "custom-domain"
)

var ErrInvalidVariant = errors.New("invalid deployment variant")

// ParseVariant converts a raw string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantBasic, VariantCustomDomain:
		return v, nil
	default:
		return "", fmt.Errorf("%w %q (allowed: basic | custom-domain)", ErrInvalidVariant, s)
	}
}

// CustomDomain reports whether the variant provisions a custom domain.
func (v Variant) CustomDomain() bool {
	return v == VariantCustomDomain
}

// VariantFromContext reads "variant" from CDK context at synth time.
// An absent value returns ("", nil) so the caller can fall back to other sources.
func VariantFromContext(scope constructs.Construct) (Variant, error) {
	raw := contextString(scope, ContextVariant)
	if raw == "" {
		return "", nil
	}
	return ParseVariant(raw)
}
