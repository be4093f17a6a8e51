package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvironmentVariables is the environment part of the configuration surface.
// CDK_DEPLOY_* wins over CDK_DEFAULT_* only when both account and region are set.
type EnvironmentVariables struct {
	DeployAccount  string `env:"CDK_DEPLOY_ACCOUNT"`
	DeployRegion   string `env:"CDK_DEPLOY_REGION"`
	DefaultAccount string `env:"CDK_DEFAULT_ACCOUNT"`
	DefaultRegion  string `env:"CDK_DEFAULT_REGION"`

	LogLevel string `env:"LOG_LEVEL"`

	// DOMAIN_NAME and HOSTED_ZONE_ID must be set together for the custom-domain variant
	DomainName   string `env:"DOMAIN_NAME"`
	HostedZoneID string `env:"HOSTED_ZONE_ID"`

	AppDir              string `env:"APP_DIR"`
	SiteConfigPath      string `env:"SITE_CONFIG_PATH"`
	Variant             string `env:"DEPLOYMENT_VARIANT"`
	ForwardQueryStrings *bool  `env:"FORWARD_QUERY_STRINGS"`
}

// GetEnvironmentVariables parses T from environ, or from the process
// environment when environ is nil.
func GetEnvironmentVariables[T any](environ map[string]string) (T, error) {
	var envObj T

	err := env.ParseWithOptions(&envObj, env.Options{Environment: environ})
	if err != nil {
		return envObj, err
	}

	return envObj, nil
}

// account and region resolve the deploy/default fallback.
func (e EnvironmentVariables) accountAndRegion() (string, string) {
	account, region := e.DeployAccount, e.DeployRegion
	if len(account) == 0 || len(region) == 0 {
		account, region = e.DefaultAccount, e.DefaultRegion
	}
	return account, region
}

func (e EnvironmentVariables) siteConfig() SiteConfig {
	account, region := e.accountAndRegion()
	return SiteConfig{
		Account:             account,
		Region:              region,
		LogLevel:            e.LogLevel,
		DomainName:          e.DomainName,
		HostedZoneID:        e.HostedZoneID,
		AppDir:              e.AppDir,
		ForwardQueryStrings: e.ForwardQueryStrings,
	}
}
