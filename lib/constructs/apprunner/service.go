package apprunner

import (
	"fmt"
	"sort"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsapprunner"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecrassets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/nextjs-apprunner/infra/lib/cdklogger"
)

const ecrAccessPolicy = "service-role/AWSAppRunnerServicePolicyForECRAccess"

// ServiceProps configures the App Runner service. Empty sizing fields take the defaults.
type ServiceProps struct {
	// AppDir is the Docker build context of the application.
	AppDir          string `validate:"required,dir"`
	Port            string `validate:"omitempty,numeric"`
	Cpu             string `validate:"omitempty,apprunner_cpu"`
	Memory          string `validate:"omitempty,apprunner_memory"`
	HealthCheckPath string `validate:"omitempty,startswith=/"`
	// Environment is passed to the container as runtime environment variables.
	Environment map[string]string
	// InstanceManagedPolicies are attached to the runtime (instance) role.
	InstanceManagedPolicies []awsiam.IManagedPolicy
}

// Service is the compute binding: image asset, access/instance roles and the App Runner service.
type Service struct {
	constructs.Construct
	Image        awsecrassets.DockerImageAsset
	AccessRole   awsiam.Role
	InstanceRole awsiam.Role
	Service      awsapprunner.CfnService
}

var propsValidator = func() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}()

func NewService(scope constructs.Construct, id string, props *ServiceProps) *Service {
	if props == nil {
		panic(fmt.Sprintf("ServiceProps are required for %s", id))
	}
	if err := propsValidator.Struct(props); err != nil {
		panic(err)
	}

	port := lo.CoalesceOrEmpty(props.Port, DefaultPort)
	cpu := lo.CoalesceOrEmpty(props.Cpu, DefaultCpu)
	memory := lo.CoalesceOrEmpty(props.Memory, DefaultMemory)
	healthCheckPath := lo.CoalesceOrEmpty(props.HealthCheckPath, DefaultHealthCheckPath)

	construct := constructs.NewConstruct(scope, jsii.String(id))
	s := &Service{Construct: construct}

	// runtime identity of the running task
	instanceRoleProps := &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("tasks.apprunner.amazonaws.com"), nil),
	}
	if len(props.InstanceManagedPolicies) > 0 {
		instanceRoleProps.ManagedPolicies = &props.InstanceManagedPolicies
	}
	s.InstanceRole = awsiam.NewRole(construct, jsii.String("AppRunnerInstanceRole"), instanceRoleProps)

	// used by App Runner to pull the image from ECR
	s.AccessRole = awsiam.NewRole(construct, jsii.String("AppRunnerAccessRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("build.apprunner.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(ecrAccessPolicy)),
		},
	})

	s.Image = awsecrassets.NewDockerImageAsset(construct, jsii.String("NextJSDockerImage"), &awsecrassets.DockerImageAssetProps{
		Directory: jsii.String(props.AppDir),
		Platform:  awsecrassets.Platform_LINUX_AMD64(),
	})

	imageConfiguration := &awsapprunner.CfnService_ImageConfigurationProperty{
		Port: jsii.String(port),
	}
	if len(props.Environment) > 0 {
		imageConfiguration.RuntimeEnvironmentVariables = runtimeEnvironment(props.Environment)
	}

	s.Service = awsapprunner.NewCfnService(construct, jsii.String("AppRunnerService"), &awsapprunner.CfnServiceProps{
		SourceConfiguration: &awsapprunner.CfnService_SourceConfigurationProperty{
			AutoDeploymentsEnabled: jsii.Bool(false),
			AuthenticationConfiguration: &awsapprunner.CfnService_AuthenticationConfigurationProperty{
				AccessRoleArn: s.AccessRole.RoleArn(),
			},
			ImageRepository: &awsapprunner.CfnService_ImageRepositoryProperty{
				ImageIdentifier:     s.Image.ImageUri(),
				ImageRepositoryType: jsii.String("ECR"),
				ImageConfiguration:  imageConfiguration,
			},
		},
		InstanceConfiguration: &awsapprunner.CfnService_InstanceConfigurationProperty{
			Cpu:             jsii.String(cpu),
			Memory:          jsii.String(memory),
			InstanceRoleArn: s.InstanceRole.RoleArn(),
		},
		HealthCheckConfiguration: &awsapprunner.CfnService_HealthCheckConfigurationProperty{
			Path:     jsii.String(healthCheckPath),
			Protocol: jsii.String("HTTP"),
		},
	})

	cdklogger.LogInfo(construct, "", "App Runner service from %s: port=%s cpu=%s memory=%s healthCheck=%s env=%d",
		props.AppDir, port, cpu, memory, healthCheckPath, len(props.Environment))

	return s
}

// ServiceUrl is the service's public host name, without scheme.
func (s *Service) ServiceUrl() *string {
	return s.Service.AttrServiceUrl()
}

// runtimeEnvironment sorts by name so the template is stable across synths.
func runtimeEnvironment(env map[string]string) *[]*awsapprunner.CfnService_KeyValuePairProperty {
	names := lo.Keys(env)
	sort.Strings(names)
	pairs := lo.Map(names, func(name string, _ int) *awsapprunner.CfnService_KeyValuePairProperty {
		return &awsapprunner.CfnService_KeyValuePairProperty{
			Name:  jsii.String(name),
			Value: jsii.String(env[name]),
		}
	})
	return &pairs
}
