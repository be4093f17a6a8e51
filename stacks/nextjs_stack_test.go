package stacks_test

import (
	"sort"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextjs-apprunner/infra/config"
	"github.com/nextjs-apprunner/infra/stacks"
	"github.com/nextjs-apprunner/infra/tests/testutil"
)

func siteConfig(t *testing.T, variant config.Variant) config.SiteConfig {
	site := config.Defaults()
	site.Variant = variant
	site.AppDir = testutil.DummyAppDir(t)
	if variant.CustomDomain() {
		site.DomainName = "example.com"
		site.HostedZoneID = "Z0123456789ABCDEFGHIJ"
	}
	return site
}

func synth(t *testing.T, site config.SiteConfig) (*stacks.NextJsStack, assertions.Template) {
	t.Helper()
	app := testutil.NewApp(t, nil)
	stack, err := stacks.NewNextJsStack(app, "TestStack", &stacks.NextJsStackProps{
		StackProps: awscdk.StackProps{Env: testutil.TestEnv()},
		Site:       site,
	})
	require.NoError(t, err)
	return stack, assertions.Template_FromStack(stack.Stack, nil)
}

// logicalID returns the single resource of the given type.
func logicalID(t *testing.T, template assertions.Template, resourceType string) string {
	t.Helper()
	found := template.FindResources(jsii.String(resourceType), nil)
	require.NotNil(t, found)
	ids := lo.Keys(*found)
	sort.Strings(ids)
	require.Len(t, ids, 1, "expected one %s", resourceType)
	return ids[0]
}

func TestNextJsStack_Basic(t *testing.T) {
	stack, template := synth(t, siteConfig(t, config.VariantBasic))
	assert.Nil(t, stack.Domain)
	assert.Nil(t, stack.Records)

	template.ResourceCountIs(jsii.String("AWS::AppRunner::Service"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::Route53::RecordSet"), jsii.Number(0))
	template.ResourceCountIs(jsii.String("AWS::CertificateManager::Certificate"), jsii.Number(0))
	template.ResourceCountIs(jsii.String("AWS::Lambda::Function"), jsii.Number(0))

	serviceID := logicalID(t, template, "AWS::AppRunner::Service")
	distID := logicalID(t, template, "AWS::CloudFront::Distribution")

	// compute URL is the CDN origin host, verbatim
	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": map[string]interface{}{
			"Aliases": assertions.Match_Absent(),
			"Origins": []interface{}{
				map[string]interface{}{
					"DomainName": map[string]interface{}{"Fn::GetAtt": []interface{}{serviceID, "ServiceUrl"}},
				},
			},
			"DefaultCacheBehavior": map[string]interface{}{
				"LambdaFunctionAssociations": assertions.Match_Absent(),
			},
		},
	})
	template.HasResourceProperties(jsii.String("AWS::CloudFront::OriginRequestPolicy"), map[string]interface{}{
		"OriginRequestPolicyConfig": map[string]interface{}{
			"HeadersConfig": map[string]interface{}{
				"Headers": assertions.Match_ArrayEquals(&[]interface{}{"User-Agent", "Referer"}),
			},
			"QueryStringsConfig": map[string]interface{}{"QueryStringBehavior": "all"},
		},
	})

	template.HasOutput(jsii.String("CloudfrontURL"), map[string]interface{}{
		"Value": map[string]interface{}{"Fn::GetAtt": []interface{}{distID, "DomainName"}},
	})
	template.HasOutput(jsii.String("ServiceURL"), map[string]interface{}{
		"Value": map[string]interface{}{"Fn::GetAtt": []interface{}{serviceID, "ServiceUrl"}},
	})
	outputs := template.FindOutputs(jsii.String("WebsiteURL"), nil)
	assert.Empty(t, *outputs)
}

func TestNextJsStack_CustomDomain(t *testing.T) {
	stack, template := synth(t, siteConfig(t, config.VariantCustomDomain))
	require.NotNil(t, stack.Domain)
	require.NotNil(t, stack.Records)

	distID := logicalID(t, template, "AWS::CloudFront::Distribution")
	distDomain := map[string]interface{}{"Fn::GetAtt": []interface{}{distID, "DomainName"}}

	template.ResourceCountIs(jsii.String("AWS::Route53::RecordSet"), jsii.Number(2))
	for _, name := range []string{"example.com.", "www.example.com."} {
		template.HasResourceProperties(jsii.String("AWS::Route53::RecordSet"), map[string]interface{}{
			"Name":         name,
			"Type":         "A",
			"HostedZoneId": "Z0123456789ABCDEFGHIJ",
			"AliasTarget":  map[string]interface{}{"DNSName": distDomain},
		})
	}

	template.HasResourceProperties(jsii.String("AWS::CertificateManager::Certificate"), map[string]interface{}{
		"DomainName":              "example.com",
		"SubjectAlternativeNames": []interface{}{"*.example.com"},
		"ValidationMethod":        "DNS",
	})

	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": map[string]interface{}{
			"Aliases": []interface{}{"example.com", "www.example.com"},
			"DefaultCacheBehavior": map[string]interface{}{
				"LambdaFunctionAssociations": []interface{}{
					map[string]interface{}{"EventType": "origin-request"},
					map[string]interface{}{"EventType": "viewer-request"},
				},
			},
		},
	})

	template.HasOutput(jsii.String("WebsiteURL"), map[string]interface{}{"Value": "https://example.com"})
	template.HasOutput(jsii.String("CloudfrontURL"), map[string]interface{}{"Value": distDomain})
}

func TestNextJsStack_ForwardQueryStringsDisabled(t *testing.T) {
	site := siteConfig(t, config.VariantBasic)
	site.ForwardQueryStrings = lo.ToPtr(false)
	_, template := synth(t, site)

	template.HasResourceProperties(jsii.String("AWS::CloudFront::OriginRequestPolicy"), map[string]interface{}{
		"OriginRequestPolicyConfig": map[string]interface{}{
			"QueryStringsConfig": map[string]interface{}{"QueryStringBehavior": "none"},
		},
	})
}

func TestNextJsStack_PassesLogLevelToService(t *testing.T) {
	site := siteConfig(t, config.VariantBasic)
	site.LogLevel = "DEBUG"
	_, template := synth(t, site)

	template.HasResourceProperties(jsii.String("AWS::AppRunner::Service"), map[string]interface{}{
		"SourceConfiguration": map[string]interface{}{
			"ImageRepository": map[string]interface{}{
				"ImageConfiguration": map[string]interface{}{
					"RuntimeEnvironmentVariables": []interface{}{
						map[string]interface{}{"Name": "LOG_LEVEL", "Value": "DEBUG"},
					},
				},
			},
		},
	})
}

func TestNextJsStack_MissingDomainFailsBeforeAnyConstruct(t *testing.T) {
	cases := map[string]func(*config.SiteConfig){
		"no domain name":    func(s *config.SiteConfig) { s.DomainName = "" },
		"no hosted zone id": func(s *config.SiteConfig) { s.HostedZoneID = "" },
		"neither":           func(s *config.SiteConfig) { s.DomainName, s.HostedZoneID = "", "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			site := siteConfig(t, config.VariantCustomDomain)
			mutate(&site)

			app := testutil.NewApp(t, nil)
			before := len(*app.Node().Children())

			stack, err := stacks.NewNextJsStack(app, "TestStack", &stacks.NextJsStackProps{
				StackProps: awscdk.StackProps{Env: testutil.TestEnv()},
				Site:       site,
			})
			require.ErrorIs(t, err, config.ErrDomainRequired)
			assert.Nil(t, stack)
			assert.Len(t, *app.Node().Children(), before)
		})
	}
}

func TestNextJsStack_InvalidSizing(t *testing.T) {
	site := siteConfig(t, config.VariantBasic)
	site.Service.Cpu = "3 vCPU"

	app := testutil.NewApp(t, nil)
	_, err := stacks.NewNextJsStack(app, "TestStack", &stacks.NextJsStackProps{Site: site})
	require.ErrorIs(t, err, config.ErrInvalidSiteConfig)
}
