package ec2power

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nathants/ec2-power/lib"
	"gopkg.in/yaml.v3"
)

func init() {
	lib.Commands["ec2-power"] = ec2Power
	lib.Args["ec2-power"] = ec2PowerArgs{}
}

type ec2PowerArgs struct {
	Action   string        `arg:"positional" help:"test | start | stop | status"`
	Instance string        `arg:"-i,--instance"`
	Topic    string        `arg:"-t,--topic" help:"sns topic name or arn"`
	Region   string        `arg:"-r,--region"`
	Delay    time.Duration `arg:"-d,--delay"`
	Attempts uint          `arg:"-a,--attempts"`
	Yaml     bool          `arg:"-y,--yaml" default:"false"`
}

func (ec2PowerArgs) Description() string {
	return "\nrun the power lambda handler locally, any action other than test, start or stop reports status\n"
}

func ec2Power() {
	args := ec2PowerArgs{
		Instance: lib.InstanceID,
		Topic:    lib.TopicArn,
		Delay:    lib.EC2WaitDelay,
		Attempts: lib.EC2WaitAttempts,
	}
	arg.MustParse(&args)
	ctx := context.Background()
	var power *lib.Power
	if args.Region == "" {
		power = lib.NewPower()
	} else {
		var err error
		power, err = lib.NewPowerRegion(args.Region)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
	}
	region := args.Region
	if region == "" {
		region = lib.Region()
	}
	topicArn, err := lib.SNSArnRegion(ctx, args.Topic, region)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	power.InstanceID = args.Instance
	power.TopicArn = topicArn
	power.Wait = &lib.EC2WaitConfig{
		Delay:    args.Delay,
		Attempts: args.Attempts,
	}
	event, err := json.Marshal(map[string]string{"action": args.Action})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	result, err := power.Handle(ctx, event)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	if args.Yaml {
		out, err := yaml.Marshal(result)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
		fmt.Print(string(out))
		return
	}
	fmt.Println(lib.Pformat(result))
}
