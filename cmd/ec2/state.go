package ec2power

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/nathants/ec2-power/lib"
)

func init() {
	lib.Commands["ec2-state"] = ec2State
	lib.Args["ec2-state"] = ec2StateArgs{}
}

type ec2StateArgs struct {
	InstanceID string `arg:"positional"`
}

func (ec2StateArgs) Description() string {
	return "\ndescribe the state of an instance\n"
}

func ec2State() {
	args := ec2StateArgs{InstanceID: lib.InstanceID}
	arg.MustParse(&args)
	ctx := context.Background()
	instance, err := lib.EC2DescribeInstance(ctx, lib.EC2Client(), args.InstanceID)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	launched := "-"
	if instance.LaunchTime != nil {
		launched = humanize.Time(*instance.LaunchTime)
	}
	state := "unknown"
	if instance.State != nil {
		state = string(instance.State.Name)
	}
	fmt.Println(args.InstanceID, state, instance.InstanceType, launched)
}
