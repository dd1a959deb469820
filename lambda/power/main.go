//
// attr: timeout 180
// trigger: api
// allow: ec2:DescribeInstances *
// allow: ec2:StartInstances arn:aws:ec2:*:*:instance/i-0e068c43430210bff
// allow: ec2:StopInstances arn:aws:ec2:*:*:instance/i-0e068c43430210bff
// allow: sns:Publish arn:aws:sns:ap-south-1:000000000000:ec2-state-notify
//

package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nathants/ec2-power/lib"
)

func main() {
	lambda.Start(lib.NewPower().Handle)
}
