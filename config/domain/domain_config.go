package domain

import (
	"strings"

	jsii "github.com/aws/jsii-runtime-go"
)

// WWWLabel is the only subdomain the site answers on besides the apex.
const WWWLabel = "www"

// Spec names the apex domain and builds the names derived from it.
type Spec struct {
	Apex string // e.g. "example.com", no trailing dot
}

func (s Spec) apex() string {
	apex := strings.TrimSuffix(strings.TrimSpace(s.Apex), ".")
	if apex == "" {
		panic("domain.Spec requires an apex domain")
	}
	return apex
}

// FQDN returns the apex domain.
func (s Spec) FQDN() *string {
	return jsii.String(s.apex())
}

// Subdomain returns label.apex, e.g. "www.example.com".
func (s Spec) Subdomain(label string) *string {
	return jsii.String(label + "." + s.apex())
}

// WWW returns "www.<apex>".
func (s Spec) WWW() *string {
	return s.Subdomain(WWWLabel)
}

// Wildcard returns "*.<apex>".
func (s Spec) Wildcard() *string {
	return s.Subdomain("*")
}

// RecordName returns the absolute record name for label (empty label for apex), with a trailing dot.
func (s Spec) RecordName(label string) *string {
	if label == "" {
		return jsii.String(s.apex() + ".")
	}
	return jsii.String(label + "." + s.apex() + ".")
}

// DomainNames lists the names served by the distribution: apex, then www.
func (s Spec) DomainNames() *[]*string {
	return &[]*string{s.FQDN(), s.WWW()}
}
