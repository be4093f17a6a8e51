package provider

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
)

// EdgeRegion is the only region CloudFront accepts certificates from.
const EdgeRegion = "us-east-1"

// CertScope indicates certificate issuance scope: edge or region.
type CertScope string

const (
	// ScopeEdge issues the certificate from a child stack pinned to us-east-1.
	ScopeEdge CertScope = "edge"
	// ScopeRegion issues the certificate in the calling stack.
	ScopeRegion CertScope = "region"
)

// ScopeFor picks the issuance scope for a CloudFront certificate declared under scope.
// Stacks already in us-east-1, or whose region is unresolved, issue in place.
func ScopeFor(scope constructs.Construct) CertScope {
	region := awscdk.Stack_Of(scope).Region()
	if region == nil || *awscdk.Token_IsUnresolved(region) || *region == EdgeRegion {
		return ScopeRegion
	}
	return ScopeEdge
}

// CertProvider defines how to obtain an ACM certificate for a domain.
type CertProvider interface {
	// Get returns a DNS-validated certificate for fqdn, with sans as SubjectAlternativeNames.
	Get(scope constructs.Construct, id string, zone awsroute53.IHostedZone, fqdn string, s CertScope, sans []*string) awscertificatemanager.ICertificate
}
