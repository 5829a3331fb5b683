package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
)

const (
	// UnknownName is reported when an instance has no Name tag or the
	// tag lookup fails.
	UnknownName = "N/A"
	// UnknownType is reported when the instance type lookup fails.
	UnknownType = "Unknown"
)

type api interface {
	awsec2.DescribeInstancesAPIClient
	DescribeTags(
		ctx context.Context,
		params *awsec2.DescribeTagsInput,
		optFns ...func(*awsec2.Options),
	) (*awsec2.DescribeTagsOutput, error)
}

// Explorer enumerates EC2 instances and looks up their metadata.
type Explorer struct {
	client api
}

func NewExplorer(cfg awssdk.Config) *Explorer {
	return &Explorer{
		client: awsec2.NewFromConfig(cfg),
	}
}

// ListRunningInstanceIDs returns the IDs of all running instances in
// the configured region, in enumeration order.
func (e *Explorer) ListRunningInstanceIDs(ctx context.Context) ([]string, error) {
	input := &awsec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"running"},
			},
		},
	}

	var ids []string
	paginator := awsec2.NewDescribeInstancesPaginator(e.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe EC2 instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				ids = append(ids, aws.ToString(instance.InstanceId))
			}
		}
	}
	return ids, nil
}

// GetInstanceName returns the instance's Name tag value. Lookup
// failures never abort a run; they degrade to UnknownName.
func (e *Explorer) GetInstanceName(ctx context.Context, instanceID string) string {
	resp, err := e.client.DescribeTags(ctx, &awsec2.DescribeTagsInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("resource-id"),
				Values: []string{instanceID},
			},
			{
				Name:   aws.String("key"),
				Values: []string{"Name"},
			},
		},
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("instance_id", instanceID).
			Msg("failed to look up Name tag")
		return UnknownName
	}
	if len(resp.Tags) == 0 {
		return UnknownName
	}
	return aws.ToString(resp.Tags[0].Value)
}

// GetInstanceType returns the instance's type, or UnknownType when the
// lookup fails.
func (e *Explorer) GetInstanceType(ctx context.Context, instanceID string) string {
	resp, err := e.client.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("instance_id", instanceID).
			Msg("failed to look up instance type")
		return UnknownType
	}
	if len(resp.Reservations) == 0 || len(resp.Reservations[0].Instances) == 0 {
		return UnknownType
	}
	return string(resp.Reservations[0].Instances[0].InstanceType)
}
