package provider

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/nextjs-apprunner/infra/lib/cdklogger"
)

type defaultProvider struct{}

// New returns a CertProvider that issues certificates for edge or regional scopes.
func New() CertProvider {
	return &defaultProvider{}
}

func (p *defaultProvider) Get(
	scope constructs.Construct,
	id string,
	zone awsroute53.IHostedZone,
	fqdn string,
	s CertScope,
	sans []*string,
) awscertificatemanager.ICertificate {
	var certScope constructs.Construct = scope
	if s == ScopeEdge {
		parent := awscdk.Stack_Of(scope)
		// sibling of the calling stack; the consumer needs CrossRegionReferences
		edgeStack := awscdk.NewStack(awscdk.Stage_Of(scope), jsii.String(*parent.StackName()+"-"+id+"EdgeCert"), &awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: parent.Account(),
				Region:  jsii.String(EdgeRegion),
			},
			CrossRegionReferences: jsii.Bool(true),
		})
		parent.AddDependency(edgeStack, jsii.String("CloudFront certificate must exist in us-east-1"))
		certScope = edgeStack
		cdklogger.LogInfo(scope, id, "Issuing %s certificate from %s (stack region %s)", fqdn, EdgeRegion, *parent.Region())
	}

	certProps := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(fqdn),
		Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
	}
	if len(sans) > 0 {
		certProps.SubjectAlternativeNames = &sans
	}

	return awscertificatemanager.NewCertificate(certScope, jsii.String(id), certProps)
}
