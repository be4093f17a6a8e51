package main

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/nextjs-apprunner/infra/config"
	"github.com/nextjs-apprunner/infra/lib/utils"
	"github.com/nextjs-apprunner/infra/stacks"
)

func main() {
	app := awscdk.NewApp(nil)

	envVars, err := config.GetEnvironmentVariables[config.EnvironmentVariables](nil)
	logger := newLogger(envVars.LogLevel)
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)
	if err != nil {
		logger.Fatal("parsing environment", zap.Error(err))
	}

	site, err := config.Load(app, nil)
	if err != nil {
		logger.Fatal("loading site config", zap.Error(err))
	}

	stackName := config.StackName(app)
	_, err = stacks.NewNextJsStack(app, stackName, &stacks.NextJsStackProps{
		StackProps: awscdk.StackProps{
			Env:                   utils.CdkEnv(site.Account, site.Region),
			CrossRegionReferences: jsii.Bool(true),
			Description:           jsii.String("Next.js on App Runner behind CloudFront"),
		},
		Site: site,
	})
	if err != nil {
		logger.Fatal("declaring stack", zap.String("stack", stackName), zap.Error(err))
	}

	app.Synth(nil)
}

// newLogger builds a production logger at level, INFO when empty or unknown.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(strings.ToLower(level)); err == nil && level != "" {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
