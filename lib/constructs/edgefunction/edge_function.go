package edgefunction

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront/experimental"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/nextjs-apprunner/infra/lib/cdklogger"
	"github.com/nextjs-apprunner/infra/lib/edge"
)

type EdgeFunctionProps struct {
	// Source overrides the rendered host-rewrite handler.
	Source string
}

type EdgeFunction struct {
	constructs.Construct
	Function experimental.EdgeFunction
}

// NewEdgeFunction deploys the host-rewrite handler as a Lambda@Edge function.
// The stack region must be resolved; outside us-east-1 CDK replicates the
// function through a support stack.
func NewEdgeFunction(scope constructs.Construct, id string, props *EdgeFunctionProps) *EdgeFunction {
	if props == nil {
		props = &EdgeFunctionProps{}
	}

	src := props.Source
	if src == "" {
		rendered, err := edge.Source()
		if err != nil {
			panic(err)
		}
		src = rendered
	}

	construct := constructs.NewConstruct(scope, jsii.String(id))

	fn := experimental.NewEdgeFunction(construct, jsii.String("LambdaEdgeFunction"), &experimental.EdgeFunctionProps{
		Runtime: awslambda.Runtime_NODEJS_20_X(),
		Handler: jsii.String(edge.HandlerName),
		Code:    awslambda.Code_FromInline(jsii.String(src)),
	})

	fn.CurrentVersion().AddPermission(jsii.String("InvokeLambdaPermission"), &awslambda.Permission{
		Principal: awsiam.NewServicePrincipal(jsii.String("edgelambda.amazonaws.com"), nil),
		Action:    jsii.String("lambda:InvokeFunction"),
	})

	cdklogger.LogInfo(construct, "", "Lambda@Edge host rewrite function (%d bytes of inline source)", len(src))

	return &EdgeFunction{Construct: construct, Function: fn}
}

// CurrentVersion is the published version attached to the distribution.
func (e *EdgeFunction) CurrentVersion() awslambda.IVersion {
	return e.Function.CurrentVersion()
}
