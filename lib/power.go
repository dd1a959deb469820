package lib

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const (
	InstanceID = "i-0e068c43430210bff"
	TopicArn   = "arn:aws:sns:ap-south-1:000000000000:ec2-state-notify"
)

const (
	ActionTest  = "test"
	ActionStart = "start"
	ActionStop  = "stop"
)

const (
	ResultTest           = "test"
	ResultAlreadyRunning = "already_running"
	ResultStarted        = "started"
	ResultStopped        = "stopped"
	ResultStatus         = "status"
	ResultError          = "error"
)

const (
	iconRunning = "🟢"
	iconStopped = "🛑"
)

type Result struct {
	Result  string `json:"result" yaml:"result"`
	SMSSent *bool  `json:"sms_sent,omitempty" yaml:"sms_sent,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Power toggles one instance and reports every outcome to one sns topic.
type Power struct {
	EC2        EC2API
	SNS        SNSAPI
	InstanceID string
	TopicArn   string
	Wait       *EC2WaitConfig
}

func NewPower() *Power {
	return &Power{
		EC2:        EC2Client(),
		SNS:        SNSClient(),
		InstanceID: InstanceID,
		TopicArn:   TopicArn,
		Wait:       DefaultEC2WaitConfig(),
	}
}

func NewPowerRegion(region string) (*Power, error) {
	ec2Regional, err := EC2ClientRegion(region)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	snsRegional, err := SNSClientRegion(region)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return &Power{
		EC2:        ec2Regional,
		SNS:        snsRegional,
		InstanceID: InstanceID,
		TopicArn:   TopicArn,
		Wait:       DefaultEC2WaitConfig(),
	}, nil
}

// notify never fails the caller, a lost sms is only logged
func (p *Power) notify(ctx context.Context, message string) bool {
	id, err := SNSPublish(ctx, p.SNS, p.TopicArn, message)
	if err != nil {
		Logger.Println("sms error:", err)
		return false
	}
	Logger.Println("sms sent:", id)
	return true
}

// Handle is the lambda entrypoint. The returned error is always nil,
// failures are reported as a Result with result=error.
func (p *Power) Handle(ctx context.Context, raw json.RawMessage) (*Result, error) {
	action := ActionFromEvent(raw)
	Logger.Println("action received:", action)
	result, err := p.dispatch(ctx, action)
	if err != nil {
		message := "❌ EC2 ERROR: " + err.Error()
		p.notify(ctx, message)
		return &Result{Result: ResultError, Error: message}, nil
	}
	return result, nil
}

func (p *Power) dispatch(ctx context.Context, action string) (*Result, error) {
	switch action {
	case ActionTest:
		sent := p.notify(ctx, fmt.Sprintf("TEST: EC2 Monitor - Instance %s", p.InstanceID))
		return &Result{Result: ResultTest, SMSSent: &sent}, nil
	case ActionStart:
		return p.start(ctx)
	case ActionStop:
		return p.stop(ctx)
	default:
		return p.status(ctx)
	}
}

func (p *Power) start(ctx context.Context) (*Result, error) {
	state, err := EC2InstanceState(ctx, p.EC2, p.InstanceID)
	if err != nil {
		return nil, err
	}
	if state == ec2types.InstanceStateNameRunning {
		p.notify(ctx, iconRunning+" EC2 - ALREADY RUNNING")
		return &Result{Result: ResultAlreadyRunning}, nil
	}
	p.notify(ctx, "🟡 EC2 - STARTING...")
	err = EC2StartInstance(ctx, p.EC2, p.InstanceID)
	if err != nil {
		return nil, err
	}
	err = EC2WaitState(ctx, p.EC2, p.InstanceID, ec2types.InstanceStateNameRunning, p.Wait)
	if err != nil {
		return nil, err
	}
	p.notify(ctx, "✅ EC2 - STARTED SUCCESS")
	return &Result{Result: ResultStarted}, nil
}

func (p *Power) stop(ctx context.Context) (*Result, error) {
	p.notify(ctx, "🟡 EC2 - STOPPING...")
	err := EC2StopInstance(ctx, p.EC2, p.InstanceID)
	if err != nil {
		return nil, err
	}
	err = EC2WaitState(ctx, p.EC2, p.InstanceID, ec2types.InstanceStateNameStopped, p.Wait)
	if err != nil {
		return nil, err
	}
	p.notify(ctx, iconStopped+" EC2 - STOPPED SUCCESS")
	return &Result{Result: ResultStopped}, nil
}

func StateIcon(state ec2types.InstanceStateName) string {
	if state == ec2types.InstanceStateNameRunning {
		return iconRunning
	}
	return iconStopped
}

func (p *Power) status(ctx context.Context) (*Result, error) {
	state, err := EC2InstanceState(ctx, p.EC2, p.InstanceID)
	if err != nil {
		return nil, err
	}
	p.notify(ctx, fmt.Sprintf("%s EC2 - %s", StateIcon(state), strings.ToUpper(string(state))))
	return &Result{Result: ResultStatus, State: string(state)}, nil
}
