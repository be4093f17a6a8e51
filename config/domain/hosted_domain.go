package domain

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	provider "github.com/nextjs-apprunner/infra/lib/cert/provider"
	"github.com/nextjs-apprunner/infra/lib/cdklogger"
)

// HostedDomainProps holds inputs for creating a HostedDomain construct.
type HostedDomainProps struct {
	Spec            Spec
	HostedZoneID    string
	AdditionalNames []string // extra SANs for the certificate
}

// HostedDomain imports an existing Route53 hosted zone by id and provisions a
// CloudFront-usable ACM certificate for the apex, with "*.<apex>" as SAN.
type HostedDomain struct {
	constructs.Construct
	Spec Spec
	Zone awsroute53.IHostedZone
	Cert awscertificatemanager.ICertificate
}

func NewHostedDomain(scope constructs.Construct, id string, props *HostedDomainProps) *HostedDomain {
	if props == nil || props.HostedZoneID == "" {
		panic("HostedDomain requires a HostedZoneID")
	}

	hdConstruct := constructs.NewConstruct(scope, jsii.String(id))
	hd := &HostedDomain{Construct: hdConstruct, Spec: props.Spec}

	apex := *props.Spec.FQDN()

	// the zone is named after the apex it serves
	hd.Zone = awsroute53.HostedZone_FromHostedZoneAttributes(hdConstruct, jsii.String("HostedZone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String(props.HostedZoneID),
		ZoneName:     jsii.String(apex),
	})

	sans := lo.Uniq(append([]string{*props.Spec.Wildcard()}, props.AdditionalNames...))
	sans = lo.Without(sans, apex)

	certScope := provider.ScopeFor(hdConstruct)
	cdklogger.LogInfo(hdConstruct, "", "Setting up hosted domain. Apex: %s, Zone: %s, CertScope: %s, SANs: %v", apex, props.HostedZoneID, certScope, sans)

	hd.Cert = provider.New().Get(hdConstruct, "Certificate", hd.Zone, apex, certScope,
		lo.Map(sans, func(name string, _ int) *string { return jsii.String(name) }))

	awscdk.NewCfnOutput(hdConstruct, jsii.String("Domain"), &awscdk.CfnOutputProps{Value: jsii.String(apex)})
	awscdk.NewCfnOutput(hdConstruct, jsii.String("HostedZoneId"), &awscdk.CfnOutputProps{Value: hd.Zone.HostedZoneId()})

	return hd
}
