package provider_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextjs-apprunner/infra/lib/cert/provider"
	"github.com/nextjs-apprunner/infra/tests/testutil"
)

func stackIn(t *testing.T, region *string) awscdk.Stack {
	app := testutil.NewApp(t, nil)
	var env *awscdk.Environment
	if region != nil {
		env = &awscdk.Environment{Account: jsii.String("123456789012"), Region: region}
	}
	return awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{Env: env})
}

func TestScopeFor(t *testing.T) {
	assert.Equal(t, provider.ScopeRegion, provider.ScopeFor(stackIn(t, jsii.String("us-east-1"))))
	assert.Equal(t, provider.ScopeEdge, provider.ScopeFor(stackIn(t, jsii.String("eu-west-1"))))
	// env-agnostic stacks cannot be split across regions
	assert.Equal(t, provider.ScopeRegion, provider.ScopeFor(stackIn(t, nil)))
}

func zoneIn(stack awscdk.Stack) awsroute53.IHostedZone {
	return awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String("Z0123456789ABCDEFGHIJ"),
		ZoneName:     jsii.String("example.com"),
	})
}

func TestGet_RegionScopeIssuesInPlace(t *testing.T) {
	stack := stackIn(t, jsii.String("us-east-1"))
	provider.New().Get(stack, "Certificate", zoneIn(stack), "example.com", provider.ScopeRegion,
		[]*string{jsii.String("*.example.com")})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::CertificateManager::Certificate"), map[string]interface{}{
		"DomainName":              "example.com",
		"SubjectAlternativeNames": []interface{}{"*.example.com"},
		"ValidationMethod":        "DNS",
	})
}

func TestGet_EdgeScopeUsesUsEast1Stack(t *testing.T) {
	stack := stackIn(t, jsii.String("eu-west-1"))
	provider.New().Get(stack, "Certificate", zoneIn(stack), "example.com", provider.ScopeEdge, nil)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::CertificateManager::Certificate"), jsii.Number(0))

	child := stack.Node().Scope().Node().TryFindChild(jsii.String("TestStack-CertificateEdgeCert"))
	require.NotNil(t, child)
	edgeStack := awscdk.Stack_Of(child)
	assert.Equal(t, provider.EdgeRegion, *edgeStack.Region())

	edgeTemplate := assertions.Template_FromStack(edgeStack, nil)
	edgeTemplate.HasResourceProperties(jsii.String("AWS::CertificateManager::Certificate"), map[string]interface{}{
		"DomainName":              "example.com",
		"SubjectAlternativeNames": assertions.Match_Absent(),
	})
	assert.Len(t, *stack.Dependencies(), 1)
}
