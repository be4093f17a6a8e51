package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/nextjs-apprunner/infra/lib/constructs/apprunner"
	"github.com/nextjs-apprunner/infra/lib/utils"
)

var (
	// ErrDomainRequired is returned when the custom-domain variant lacks the domain name or the hosted zone id.
	ErrDomainRequired    = errors.New("custom-domain variant requires both a domain name and a hosted zone id")
	ErrInvalidSiteConfig = errors.New("invalid site config")
)

// SiteConfig is the full deployment-time configuration. It is fixed once loaded.
type SiteConfig struct {
	Account  string  `yaml:"account" toml:"account"`
	Region   string  `yaml:"region" toml:"region" validate:"required"`
	LogLevel string  `yaml:"logLevel" toml:"logLevel" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Variant  Variant `yaml:"variant" toml:"variant" validate:"required,oneof=basic custom-domain"`

	DomainName   string `yaml:"domainName" toml:"domainName" validate:"required_if=Variant custom-domain,omitempty,fqdn"`
	HostedZoneID string `yaml:"hostedZoneId" toml:"hostedZoneId" validate:"required_if=Variant custom-domain,omitempty,alphanum"`

	// AppDir holds the Dockerfile of the Next.js application. Relative paths resolve against the project root.
	AppDir              string        `yaml:"appDir" toml:"appDir" validate:"required,dir"`
	ForwardQueryStrings *bool         `yaml:"forwardQueryStrings" toml:"forwardQueryStrings"`
	Service             ServiceConfig `yaml:"service" toml:"service"`
}

// ServiceConfig sizes the App Runner service.
type ServiceConfig struct {
	Port            string            `yaml:"port" toml:"port" validate:"required,numeric"`
	Cpu             string            `yaml:"cpu" toml:"cpu" validate:"required,apprunner_cpu"`
	Memory          string            `yaml:"memory" toml:"memory" validate:"required,apprunner_memory"`
	HealthCheckPath string            `yaml:"healthCheckPath" toml:"healthCheckPath" validate:"required,startswith=/"`
	Environment     map[string]string `yaml:"environment" toml:"environment"`
}

// Defaults mirrors the values the stack was first deployed with.
func Defaults() SiteConfig {
	return SiteConfig{
		Region:              "us-east-1",
		LogLevel:            "INFO",
		AppDir:              "app",
		ForwardQueryStrings: lo.ToPtr(true),
		Service: ServiceConfig{
			Port:            apprunner.DefaultPort,
			Cpu:             apprunner.DefaultCpu,
			Memory:          apprunner.DefaultMemory,
			HealthCheckPath: apprunner.DefaultHealthCheckPath,
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := apprunner.RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the configuration before any construct is declared.
func (c SiteConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required_if" && (fe.Field() == "DomainName" || fe.Field() == "HostedZoneID") {
				return fmt.Errorf("%w: %w", ErrDomainRequired, err)
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidSiteConfig, err)
}

// ForwardsQueryStrings defaults to true when unset.
func (c SiteConfig) ForwardsQueryStrings() bool {
	return lo.FromPtrOr(c.ForwardQueryStrings, true)
}

// Load builds the SiteConfig from, in increasing precedence: defaults, the optional
// site config file, the environment (environ, or the process environment when nil)
// and CDK context. It does not validate; see Validate.
func Load(scope constructs.Construct, environ map[string]string) (SiteConfig, error) {
	envVars, err := GetEnvironmentVariables[EnvironmentVariables](environ)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("parsing environment: %w", err)
	}

	cfg := Defaults()

	path := SiteConfigPath(scope)
	if path == "" {
		path = envVars.SiteConfigPath
	}
	fileCfg, err := LoadFile(path)
	if err != nil {
		return SiteConfig{}, err
	}
	if fileCfg != nil {
		if err := mergeLayer(&cfg, *fileCfg); err != nil {
			return SiteConfig{}, fmt.Errorf("merging site config file %s: %w", path, err)
		}
	}

	if err := mergeLayer(&cfg, envVars.siteConfig()); err != nil {
		return SiteConfig{}, fmt.Errorf("merging environment: %w", err)
	}

	variant, err := resolveVariant(scope, envVars.Variant, cfg)
	if err != nil {
		return SiteConfig{}, err
	}
	cfg.Variant = variant

	if !filepath.IsAbs(cfg.AppDir) {
		cfg.AppDir = filepath.Join(utils.GetProjectRootDir(), cfg.AppDir)
	}

	return cfg, nil
}

// mergeLayer applies the non-zero fields of layer over cfg. Pointer fields are
// replaced rather than merged so an explicit false still overrides.
func mergeLayer(cfg *SiteConfig, layer SiteConfig) error {
	forward := layer.ForwardQueryStrings
	layer.ForwardQueryStrings = nil
	if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
		return err
	}
	if forward != nil {
		cfg.ForwardQueryStrings = lo.ToPtr(*forward)
	}
	return nil
}

// resolveVariant picks context, then environment, then file. Without any of them
// a domain name or a hosted zone id implies the custom-domain variant.
func resolveVariant(scope constructs.Construct, envVariant string, cfg SiteConfig) (Variant, error) {
	v, err := VariantFromContext(scope)
	if err != nil || v != "" {
		return v, err
	}
	if envVariant != "" {
		return ParseVariant(envVariant)
	}
	if cfg.Variant != "" {
		return ParseVariant(string(cfg.Variant))
	}
	if cfg.DomainName != "" || cfg.HostedZoneID != "" {
		return VariantCustomDomain, nil
	}
	return VariantBasic, nil
}
