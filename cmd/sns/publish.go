package ec2power

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/ec2-power/lib"
)

func init() {
	lib.Commands["sns-publish"] = snsPublish
	lib.Args["sns-publish"] = snsPublishArgs{}
}

type snsPublishArgs struct {
	Topic   string `arg:"positional,required" help:"sns topic name or arn"`
	Message string `arg:"positional,required"`
}

func (snsPublishArgs) Description() string {
	return "\npublish a transactional sms message to a sns topic\n"
}

func snsPublish() {
	var args snsPublishArgs
	arg.MustParse(&args)
	ctx := context.Background()
	topicArn, err := lib.SNSArn(ctx, args.Topic)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	id, err := lib.SNSPublish(ctx, lib.SNSClient(), topicArn, args.Message)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(id)
}
