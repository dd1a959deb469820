package ec2power

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/nathants/ec2-power/lib"
)

func init() {
	lib.Commands["ec2-stop"] = ec2Stop
	lib.Args["ec2-stop"] = ec2StopArgs{}
}

type ec2StopArgs struct {
	InstanceID string `arg:"positional,required"`
	Preview    bool   `arg:"-p,--preview" default:"false"`
	Wait       bool   `arg:"-w,--wait" default:"false"`
}

func (ec2StopArgs) Description() string {
	return "\nstop an instance\n"
}

func ec2Stop() {
	var args ec2StopArgs
	arg.MustParse(&args)
	ctx := context.Background()
	state, err := lib.EC2InstanceState(ctx, lib.EC2Client(), args.InstanceID)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if state != ec2types.InstanceStateNameRunning {
		lib.Logger.Fatal("error: instance is not running: ", state)
	}
	lib.Logger.Println(lib.PreviewString(args.Preview)+"stopping:", args.InstanceID)
	if args.Preview {
		os.Exit(0)
	}
	err = lib.EC2StopInstance(ctx, lib.EC2Client(), args.InstanceID)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if args.Wait {
		err = lib.EC2WaitState(ctx, lib.EC2Client(), args.InstanceID, ec2types.InstanceStateNameStopped, nil)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
}
