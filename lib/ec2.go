package lib

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const (
	EC2WaitDelay    = 10 * time.Second
	EC2WaitAttempts = 12
)

// EC2API is the subset of *ec2.Client used to control one instance.
type EC2API interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, input *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, input *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

var ec2Client *ec2.Client
var ec2ClientLock sync.Mutex

func EC2Client() *ec2.Client {
	ec2ClientLock.Lock()
	defer ec2ClientLock.Unlock()
	if ec2Client == nil {
		ec2Client = ec2.NewFromConfig(*Session())
	}
	return ec2Client
}

func EC2ClientRegion(region string) (*ec2.Client, error) {
	cfg, err := SessionRegion(region)
	if err != nil {
		return nil, err
	}
	return ec2.NewFromConfig(*cfg), nil
}

func EC2DescribeInstance(ctx context.Context, api EC2API, instanceID string) (*ec2types.Instance, error) {
	Logger.Println("describe instance", instanceID)
	out, err := api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		err := fmt.Errorf("no instance found for id: %s", instanceID)
		Logger.Println("error:", err)
		return nil, err
	}
	return &out.Reservations[0].Instances[0], nil
}

func EC2InstanceState(ctx context.Context, api EC2API, instanceID string) (ec2types.InstanceStateName, error) {
	instance, err := EC2DescribeInstance(ctx, api, instanceID)
	if err != nil {
		return "", err
	}
	if instance.State == nil {
		err := fmt.Errorf("no state for instance: %s", instanceID)
		Logger.Println("error:", err)
		return "", err
	}
	return instance.State.Name, nil
}

func EC2StartInstance(ctx context.Context, api EC2API, instanceID string) error {
	Logger.Println("start instance", instanceID)
	_, err := api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	return nil
}

func EC2StopInstance(ctx context.Context, api EC2API, instanceID string) error {
	Logger.Println("stop instance", instanceID)
	_, err := api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	return nil
}

type EC2WaitConfig struct {
	Delay    time.Duration
	Attempts uint
}

func DefaultEC2WaitConfig() *EC2WaitConfig {
	return &EC2WaitConfig{
		Delay:    EC2WaitDelay,
		Attempts: EC2WaitAttempts,
	}
}

// states from which the target state can no longer be reached
var ec2WaitFailureStates = map[ec2types.InstanceStateName][]ec2types.InstanceStateName{
	ec2types.InstanceStateNameRunning: {
		ec2types.InstanceStateNameShuttingDown,
		ec2types.InstanceStateNameTerminated,
		ec2types.InstanceStateNameStopping,
	},
	ec2types.InstanceStateNameStopped: {
		ec2types.InstanceStateNamePending,
		ec2types.InstanceStateNameTerminated,
	},
}

var errEC2WaitPending = errors.New("instance not in desired state")

// running -> InstanceRunning, shutting-down -> InstanceShuttingDown
func ec2WaiterName(state ec2types.InstanceStateName) string {
	name := "Instance"
	for _, part := range strings.Split(string(state), "-") {
		if part != "" {
			name += strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return name
}

func EC2WaitState(ctx context.Context, api EC2API, instanceID string, state ec2types.InstanceStateName, conf *EC2WaitConfig) error {
	if conf == nil {
		conf = DefaultEC2WaitConfig()
	}
	if conf.Attempts == 0 {
		err := fmt.Errorf("wait attempts must be positive")
		Logger.Println("error:", err)
		return err
	}
	name := ec2WaiterName(state)
	Logger.Println("wait for state", state, "for", instanceID)
	err := retry.Do(
		func() error {
			current, err := EC2InstanceState(ctx, api, instanceID)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if current == state {
				return nil
			}
			if slices.Contains(ec2WaitFailureStates[state], current) {
				return retry.Unrecoverable(fmt.Errorf("instance %s reached terminal state: %s", instanceID, current))
			}
			return errEC2WaitPending
		},
		retry.Context(ctx),
		retry.Attempts(conf.Attempts),
		retry.Delay(conf.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, _ error) {
			Logger.Printf("waiting for state %s %d/%d\n", state, n+1, conf.Attempts)
		}),
	)
	if err == nil {
		return nil
	}
	// same text as the boto waiters, it reaches the caller and the sms as is
	if errors.Is(err, errEC2WaitPending) {
		err = fmt.Errorf("Waiter %s failed: Max attempts exceeded", name)
	} else {
		err = fmt.Errorf("Waiter %s failed: %w", name, err)
	}
	Logger.Println("error:", err)
	return err
}
