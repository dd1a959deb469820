package lib

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/gofrs/uuid"
)

const (
	SNSSMSTypeAttribute     = "AWS.SNS.SMS.SMSType"
	SNSSMSTypeTransactional = "Transactional"

	snsFifoGroupID = "ec2-power"
)

// SNSAPI is the subset of *sns.Client used to send notifications.
type SNSAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var snsClient *sns.Client
var snsClientLock sync.Mutex

func SNSClient() *sns.Client {
	snsClientLock.Lock()
	defer snsClientLock.Unlock()
	if snsClient == nil {
		snsClient = sns.NewFromConfig(*Session())
	}
	return snsClient
}

func SNSClientRegion(region string) (*sns.Client, error) {
	cfg, err := SessionRegion(region)
	if err != nil {
		return nil, err
	}
	return sns.NewFromConfig(*cfg), nil
}

// SNSArn accepts a topic name or arn and returns the arn.
func SNSArn(ctx context.Context, name string) (string, error) {
	return SNSArnRegion(ctx, name, Region())
}

func SNSArnRegion(ctx context.Context, name, region string) (string, error) {
	if strings.HasPrefix(name, "arn:") {
		return name, nil
	}
	account, err := StsAccount(ctx)
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	return snsTopicArn(region, account, name), nil
}

func snsTopicArn(region, account, name string) string {
	return fmt.Sprintf("arn:aws:sns:%s:%s:%s", region, account, name)
}

func snsPublishInput(topicArn, message string) *sns.PublishInput {
	input := &sns.PublishInput{
		TopicArn: aws.String(topicArn),
		Message:  aws.String(message),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			SNSSMSTypeAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(SNSSMSTypeTransactional),
			},
		},
	}
	if strings.HasSuffix(topicArn, ".fifo") {
		input.MessageGroupId = aws.String(snsFifoGroupID)
		input.MessageDeduplicationId = aws.String(uuid.Must(uuid.NewV4()).String())
	}
	return input
}

// SNSPublish sends a transactional sms message and returns the message id.
func SNSPublish(ctx context.Context, api SNSAPI, topicArn, message string) (string, error) {
	out, err := api.Publish(ctx, snsPublishInput(topicArn, message))
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}
