package dns

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/nextjs-apprunner/infra/config/domain"
)

type AliasRecordsProps struct {
	Zone         awsroute53.IHostedZone
	Domain       domain.Spec
	Distribution awscloudfront.IDistribution
}

// AliasRecords points the apex and www names at the distribution.
type AliasRecords struct {
	constructs.Construct
	Apex awsroute53.ARecord
	WWW  awsroute53.ARecord
}

func NewAliasRecords(scope constructs.Construct, id string, props *AliasRecordsProps) *AliasRecords {
	if props == nil || props.Zone == nil || props.Distribution == nil {
		panic("AliasRecords requires a zone and a distribution")
	}

	construct := constructs.NewConstruct(scope, jsii.String(id))
	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(props.Distribution))

	return &AliasRecords{
		Construct: construct,
		Apex: awsroute53.NewARecord(construct, jsii.String("AliasRecord"), &awsroute53.ARecordProps{
			Zone:       props.Zone,
			RecordName: props.Domain.RecordName(""),
			Target:     target,
		}),
		WWW: awsroute53.NewARecord(construct, jsii.String("WWWAliasRecord"), &awsroute53.ARecordProps{
			Zone:       props.Zone,
			RecordName: props.Domain.RecordName(domain.WWWLabel),
			Target:     target,
		}),
	}
}
