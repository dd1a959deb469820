package ec2power

import (
	"context"
	"time"

	"github.com/alexflint/go-arg"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/nathants/ec2-power/lib"
)

func init() {
	lib.Commands["ec2-wait-state"] = ec2WaitState
	lib.Args["ec2-wait-state"] = ec2WaitStateArgs{}
}

type ec2WaitStateArgs struct {
	State      string        `arg:"positional,required" help:"pending | running | stopping | stopped | shutting-down | terminated"`
	InstanceID string        `arg:"positional,required"`
	Delay      time.Duration `arg:"-d,--delay" default:"10s"`
	Attempts   uint          `arg:"-a,--attempts" default:"12"`
}

func (ec2WaitStateArgs) Description() string {
	return "\nwait for state\n"
}

func ec2WaitState() {
	var args ec2WaitStateArgs
	arg.MustParse(&args)
	ctx := context.Background()
	err := lib.EC2WaitState(ctx, lib.EC2Client(), args.InstanceID, ec2types.InstanceStateName(args.State), &lib.EC2WaitConfig{
		Delay:    args.Delay,
		Attempts: args.Attempts,
	})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
