package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Context keys read from cdk.json or `cdk synth --context key=value`.
const (
	ContextStackName      = "stackName"
	ContextVariant        = "variant"
	ContextSiteConfigPath = "siteConfigPath"
)

// DefaultStackName is used when no 'stackName' context value is set.
const DefaultStackName = "NextJSAppRunnerDeployment"

// StackName returns the stack name. Change it through 'cdk.json/context/stackName'.
func StackName(scope constructs.Construct) string {
	if v := contextString(scope, ContextStackName); v != "" {
		return v
	}
	return DefaultStackName
}

// SiteConfigPath returns the optional site config file path set through 'context/siteConfigPath'.
func SiteConfigPath(scope constructs.Construct) string {
	return contextString(scope, ContextSiteConfigPath)
}

func contextString(scope constructs.Construct, key string) string {
	if scope == nil {
		return ""
	}
	ctxValue := scope.Node().TryGetContext(jsii.String(key))
	if v, ok := ctxValue.(string); ok {
		return v
	}
	return ""
}
