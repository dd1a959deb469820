package lib

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// fakeEC2 reports states in order on each describe, repeating the last one.
type fakeEC2 struct {
	states      []ec2types.InstanceStateName
	describeErr error
	startErr    error
	stopErr     error
	empty       bool
	describes   int
	starts      int
	stops       int
}

func (f *fakeEC2) DescribeInstances(_ context.Context, input *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describes++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if f.empty {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	i := min(f.describes, len(f.states)) - 1
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2types.Reservation{{
			Instances: []ec2types.Instance{{
				InstanceId: aws.String(input.InstanceIds[0]),
				State:      &ec2types.InstanceState{Name: f.states[i]},
			}},
		}},
	}, nil
}

func (f *fakeEC2) StartInstances(_ context.Context, _ *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	f.starts++
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &ec2.StartInstancesOutput{}, nil
}

func (f *fakeEC2) StopInstances(_ context.Context, _ *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	f.stops++
	if f.stopErr != nil {
		return nil, f.stopErr
	}
	return &ec2.StopInstancesOutput{}, nil
}

type fakeSNS struct {
	inputs   []*sns.PublishInput
	messages []string
	err      error
}

func (f *fakeSNS) Publish(_ context.Context, input *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, input)
	f.messages = append(f.messages, aws.ToString(input.Message))
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String(fmt.Sprintf("msg-%d", len(f.inputs)))}, nil
}

func states(xs ...ec2types.InstanceStateName) []ec2types.InstanceStateName {
	return xs
}

func fastWait() *EC2WaitConfig {
	return &EC2WaitConfig{Attempts: EC2WaitAttempts}
}
