package ec2power

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/nathants/ec2-power/lib"
)

func init() {
	lib.Commands["ec2-start"] = ec2Start
	lib.Args["ec2-start"] = ec2StartArgs{}
}

type ec2StartArgs struct {
	InstanceID string `arg:"positional,required"`
	Preview    bool   `arg:"-p,--preview" default:"false"`
	Wait       bool   `arg:"-w,--wait" default:"false"`
}

func (ec2StartArgs) Description() string {
	return "\nstart an instance\n"
}

func ec2Start() {
	var args ec2StartArgs
	arg.MustParse(&args)
	ctx := context.Background()
	state, err := lib.EC2InstanceState(ctx, lib.EC2Client(), args.InstanceID)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if state != ec2types.InstanceStateNameStopped {
		lib.Logger.Fatal("error: instance is not stopped: ", state)
	}
	lib.Logger.Println(lib.PreviewString(args.Preview)+"starting:", args.InstanceID)
	if args.Preview {
		os.Exit(0)
	}
	err = lib.EC2StartInstance(ctx, lib.EC2Client(), args.InstanceID)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if args.Wait {
		err = lib.EC2WaitState(ctx, lib.EC2Client(), args.InstanceID, ec2types.InstanceStateNameRunning, nil)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
}
