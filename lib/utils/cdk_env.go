package utils

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

// CdkEnv builds the stack environment. An empty account leaves it unresolved so
// `cdk synth` works without credentials. For more information see:
// https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func CdkEnv(account, region string) *awscdk.Environment {
	env := &awscdk.Environment{}
	if account != "" {
		env.Account = jsii.String(account)
	}
	if region != "" {
		env.Region = jsii.String(region)
	}
	return env
}
