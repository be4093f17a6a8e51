package stacks

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/nextjs-apprunner/infra/config"
	"github.com/nextjs-apprunner/infra/config/domain"
	"github.com/nextjs-apprunner/infra/lib/cdklogger"
	"github.com/nextjs-apprunner/infra/lib/constructs/apprunner"
	"github.com/nextjs-apprunner/infra/lib/constructs/cdn"
	"github.com/nextjs-apprunner/infra/lib/constructs/dns"
	"github.com/nextjs-apprunner/infra/lib/constructs/edgefunction"
)

type NextJsStackProps struct {
	awscdk.StackProps
	Site config.SiteConfig
}

type NextJsStack struct {
	awscdk.Stack
	Service      *apprunner.Service
	Distribution *cdn.Distribution
	// set for the custom-domain variant only
	Domain       *domain.HostedDomain
	EdgeFunction *edgefunction.EdgeFunction
	Records      *dns.AliasRecords
}

// NewNextJsStack declares the App Runner service, the distribution in front of it
// and, for the custom-domain variant, the certificate, edge function and alias records.
// Configuration errors are returned before anything is added to scope.
func NewNextJsStack(scope constructs.Construct, id string, props *NextJsStackProps) (*NextJsStack, error) {
	if props == nil {
		return nil, fmt.Errorf("%w: missing stack props", config.ErrInvalidSiteConfig)
	}
	site := props.Site
	if err := site.Validate(); err != nil {
		return nil, err
	}

	sprops := props.StackProps
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)
	s := &NextJsStack{Stack: stack}

	cdklogger.LogInfo(stack, "", "Deploying variant %s from %s", site.Variant, site.AppDir)
	zap.L().Info("declaring stack",
		zap.String("stack", id),
		zap.String("variant", string(site.Variant)),
		zap.String("region", site.Region))

	s.Service = apprunner.NewService(stack, "AppRunner", &apprunner.ServiceProps{
		AppDir:          site.AppDir,
		Port:            site.Service.Port,
		Cpu:             site.Service.Cpu,
		Memory:          site.Service.Memory,
		HealthCheckPath: site.Service.HealthCheckPath,
		Environment:     runtimeEnvironment(site),
	})

	distProps := &cdn.DistributionProps{
		OriginHost:          s.Service.ServiceUrl(),
		ForwardQueryStrings: site.ForwardsQueryStrings(),
	}

	if site.Variant.CustomDomain() {
		spec := domain.Spec{Apex: site.DomainName}
		s.Domain = domain.NewHostedDomain(stack, "HostedDomain", &domain.HostedDomainProps{
			Spec:         spec,
			HostedZoneID: site.HostedZoneID,
		})
		s.EdgeFunction = edgefunction.NewEdgeFunction(stack, "EdgeFunction", nil)
		distProps.Domain = s.Domain
		distProps.EdgeFunction = s.EdgeFunction
	}

	s.Distribution = cdn.NewDistribution(stack, "CloudFront", distProps)

	if s.Domain != nil {
		s.Records = dns.NewAliasRecords(stack, "Route53", &dns.AliasRecordsProps{
			Zone:         s.Domain.Zone,
			Domain:       s.Domain.Spec,
			Distribution: s.Distribution.Distribution,
		})
		awscdk.NewCfnOutput(stack, jsii.String("WebsiteURL"), &awscdk.CfnOutputProps{
			Value:       jsii.String("https://" + *s.Domain.Spec.FQDN()),
			Description: jsii.String("The custom domain URL of the website"),
		})
	}

	awscdk.NewCfnOutput(stack, jsii.String("CloudfrontURL"), &awscdk.CfnOutputProps{
		Value:       s.Distribution.DomainName(),
		Description: jsii.String("The CloudFront distribution domain"),
	})
	awscdk.NewCfnOutput(stack, jsii.String("ServiceURL"), &awscdk.CfnOutputProps{
		Value:       s.Service.ServiceUrl(),
		Description: jsii.String("The App Runner service URL"),
	})

	return s, nil
}

// runtimeEnvironment passes LOG_LEVEL to the container unless the site config sets it.
func runtimeEnvironment(site config.SiteConfig) map[string]string {
	return lo.Assign(map[string]string{"LOG_LEVEL": site.LogLevel}, site.Service.Environment)
}
