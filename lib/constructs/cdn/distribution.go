// Package cdn fronts the App Runner service with a CloudFront distribution.
package cdn

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"

	"github.com/nextjs-apprunner/infra/config/domain"
	"github.com/nextjs-apprunner/infra/lib/cdklogger"
	"github.com/nextjs-apprunner/infra/lib/constructs/edgefunction"
)

// ForwardedHeaders is the origin-request header allow-list.
var ForwardedHeaders = []string{"User-Agent", "Referer"}

type DistributionProps struct {
	// OriginHost is the origin domain name, used verbatim.
	OriginHost          *string
	ForwardQueryStrings bool
	// Domain and EdgeFunction are set for the custom-domain variant only.
	Domain       *domain.HostedDomain
	EdgeFunction *edgefunction.EdgeFunction
}

type Distribution struct {
	constructs.Construct
	Distribution        awscloudfront.Distribution
	OriginRequestPolicy awscloudfront.OriginRequestPolicy
}

func NewDistribution(scope constructs.Construct, id string, props *DistributionProps) *Distribution {
	if props == nil || props.OriginHost == nil {
		panic("DistributionProps.OriginHost is required")
	}

	construct := constructs.NewConstruct(scope, jsii.String(id))
	d := &Distribution{Construct: construct}

	origin := awscloudfrontorigins.NewHttpOrigin(props.OriginHost, &awscloudfrontorigins.HttpOriginProps{
		ProtocolPolicy: awscloudfront.OriginProtocolPolicy_HTTPS_ONLY,
		HttpPort:       jsii.Number(80),
		HttpsPort:      jsii.Number(443),
	})

	queryStrings := awscloudfront.OriginRequestQueryStringBehavior_None()
	if props.ForwardQueryStrings {
		queryStrings = awscloudfront.OriginRequestQueryStringBehavior_All()
	}

	d.OriginRequestPolicy = awscloudfront.NewOriginRequestPolicy(construct, jsii.String("UserAgentRefererHeadersPolicy"), &awscloudfront.OriginRequestPolicyProps{
		HeaderBehavior:      awscloudfront.OriginRequestHeaderBehavior_AllowList(lo.ToSlicePtr(ForwardedHeaders)...),
		QueryStringBehavior: queryStrings,
	})

	behavior := &awscloudfront.BehaviorOptions{
		Origin:               origin,
		ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		OriginRequestPolicy:  d.OriginRequestPolicy,
		CachePolicy:          awscloudfront.CachePolicy_CACHING_DISABLED(),
		AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_ALL(),
	}
	if props.EdgeFunction != nil {
		version := props.EdgeFunction.CurrentVersion()
		behavior.EdgeLambdas = &[]*awscloudfront.EdgeLambda{
			{FunctionVersion: version, EventType: awscloudfront.LambdaEdgeEventType_ORIGIN_REQUEST},
			{FunctionVersion: version, EventType: awscloudfront.LambdaEdgeEventType_VIEWER_REQUEST},
		}
	}

	distProps := &awscloudfront.DistributionProps{
		DefaultBehavior: behavior,
		HttpVersion:     awscloudfront.HttpVersion_HTTP2,
	}
	if props.Domain != nil {
		distProps.DomainNames = props.Domain.Spec.DomainNames()
		distProps.Certificate = props.Domain.Cert
		cdklogger.LogInfo(construct, "", "Serving %v", lo.FromSlicePtr(*distProps.DomainNames))
	}

	d.Distribution = awscloudfront.NewDistribution(construct, jsii.String("CloudFrontDistribution"), distProps)

	return d
}

// DomainName is the distribution's CloudFront domain, e.g. d111111abcdef8.cloudfront.net.
func (d *Distribution) DomainName() *string {
	return d.Distribution.DistributionDomainName()
}
