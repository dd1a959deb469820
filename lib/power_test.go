package lib

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPower(api *fakeEC2, notifier *fakeSNS) *Power {
	return &Power{
		EC2:        api,
		SNS:        notifier,
		InstanceID: testInstanceID,
		TopicArn:   TopicArn,
		Wait:       fastWait(),
	}
}

func handle(t *testing.T, p *Power, event string) *Result {
	t.Helper()
	result, err := p.Handle(context.Background(), json.RawMessage(event))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestHandleTest(t *testing.T) {
	api := &fakeEC2{}
	notifier := &fakeSNS{}
	result := handle(t, newTestPower(api, notifier), `{"action": "test"}`)
	assert.Equal(t, ResultTest, result.Result)
	require.NotNil(t, result.SMSSent)
	assert.True(t, *result.SMSSent)
	assert.Equal(t, []string{"TEST: EC2 Monitor - Instance " + testInstanceID}, notifier.messages)
	assert.Equal(t, 0, api.describes+api.starts+api.stops)
}

func TestHandleTestNotifyFailure(t *testing.T) {
	notifier := &fakeSNS{err: errors.New("no route")}
	result := handle(t, newTestPower(&fakeEC2{}, notifier), `{"action": "test"}`)
	assert.Equal(t, ResultTest, result.Result)
	require.NotNil(t, result.SMSSent)
	assert.False(t, *result.SMSSent)
	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "test", "sms_sent": false}`, string(out))
}

func TestHandleStartAlreadyRunning(t *testing.T) {
	api := &fakeEC2{states: states(ec2types.InstanceStateNameRunning)}
	notifier := &fakeSNS{}
	result := handle(t, newTestPower(api, notifier), `{"action": "start"}`)
	assert.Equal(t, &Result{Result: ResultAlreadyRunning}, result)
	assert.Equal(t, 0, api.starts)
	assert.Equal(t, 0, api.stops)
	assert.Equal(t, []string{"🟢 EC2 - ALREADY RUNNING"}, notifier.messages)
}

func TestHandleStart(t *testing.T) {
	api := &fakeEC2{states: states(
		ec2types.InstanceStateNameStopped,
		ec2types.InstanceStateNamePending,
		ec2types.InstanceStateNameRunning,
	)}
	notifier := &fakeSNS{}
	result := handle(t, newTestPower(api, notifier), `{"action": "start"}`)
	assert.Equal(t, &Result{Result: ResultStarted}, result)
	assert.Equal(t, 1, api.starts)
	assert.Equal(t, 0, api.stops)
	assert.Equal(t, []string{"🟡 EC2 - STARTING...", "✅ EC2 - STARTED SUCCESS"}, notifier.messages)
}

func TestHandleStop(t *testing.T) {
	api := &fakeEC2{states: states(
		ec2types.InstanceStateNameStopping,
		ec2types.InstanceStateNameStopped,
	)}
	notifier := &fakeSNS{}
	result := handle(t, newTestPower(api, notifier), `{"action": "stop"}`)
	assert.Equal(t, &Result{Result: ResultStopped}, result)
	assert.Equal(t, 1, api.stops)
	assert.Equal(t, 0, api.starts)
	assert.Equal(t, []string{"🟡 EC2 - STOPPING...", "🛑 EC2 - STOPPED SUCCESS"}, notifier.messages)
}

func TestHandleStatus(t *testing.T) {
	type test struct {
		state   ec2types.InstanceStateName
		message string
	}
	tests := []test{
		{ec2types.InstanceStateNameRunning, "🟢 EC2 - RUNNING"},
		{ec2types.InstanceStateNameStopped, "🛑 EC2 - STOPPED"},
		{ec2types.InstanceStateNamePending, "🛑 EC2 - PENDING"},
		{ec2types.InstanceStateNameShuttingDown, "🛑 EC2 - SHUTTING-DOWN"},
	}
	for _, test := range tests {
		api := &fakeEC2{states: states(test.state)}
		notifier := &fakeSNS{}
		result := handle(t, newTestPower(api, notifier), `{}`)
		assert.Equal(t, &Result{Result: ResultStatus, State: string(test.state)}, result)
		assert.Equal(t, []string{test.message}, notifier.messages)
		assert.Equal(t, 0, api.starts+api.stops)
	}
}

func TestHandleStatusFallthrough(t *testing.T) {
	events := []string{
		`{"action": "reboot"}`,
		`{"body": "{broken"}`,
		`{"queryStringParameters": {"other": "x"}}`,
		`{"Body": "{\"action\": \"stop\"}"}`,
		`{"QUERYSTRINGPARAMETERS": {"action": "stop"}}`,
		`[]`,
		`null`,
	}
	for _, event := range events {
		api := &fakeEC2{states: states(ec2types.InstanceStateNameStopped)}
		result := handle(t, newTestPower(api, &fakeSNS{}), event)
		assert.Equal(t, ResultStatus, result.Result, event)
		assert.Equal(t, "stopped", result.State, event)
		assert.Equal(t, 0, api.starts+api.stops, event)
	}
}

func TestHandleInputShapes(t *testing.T) {
	events := []string{
		`{"action": "START"}`,
		`{"queryStringParameters": {"action": "Start"}}`,
		`{"body": "{\"action\": \"start\"}"}`,
	}
	for _, event := range events {
		api := &fakeEC2{states: states(ec2types.InstanceStateNameStopped, ec2types.InstanceStateNameRunning)}
		notifier := &fakeSNS{}
		result := handle(t, newTestPower(api, notifier), event)
		assert.Equal(t, ResultStarted, result.Result, event)
		assert.Equal(t, 1, api.starts, event)
	}
}

func TestHandleProviderErrors(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "IncorrectInstanceState", Message: "bad state"}
	type test struct {
		name   string
		event  string
		api    *fakeEC2
		starts int
		stops  int
	}
	tests := []test{
		{"status describe", `{}`, &fakeEC2{describeErr: apiErr}, 0, 0},
		{"status not found", `{}`, &fakeEC2{empty: true}, 0, 0},
		{"start describe", `{"action": "start"}`, &fakeEC2{describeErr: apiErr}, 0, 0},
		{"start call", `{"action": "start"}`, &fakeEC2{states: states(ec2types.InstanceStateNameStopped), startErr: apiErr}, 1, 0},
		{"start wait", `{"action": "start"}`, &fakeEC2{states: states(ec2types.InstanceStateNameStopped)}, 1, 0},
		{"stop call", `{"action": "stop"}`, &fakeEC2{stopErr: apiErr}, 0, 1},
		{"stop wait", `{"action": "stop"}`, &fakeEC2{states: states(ec2types.InstanceStateNameRunning)}, 0, 1},
	}
	for _, test := range tests {
		for _, notifyErr := range []error{nil, errors.New("sns down")} {
			notifier := &fakeSNS{err: notifyErr}
			test.api.describes, test.api.starts, test.api.stops = 0, 0, 0
			result := handle(t, newTestPower(test.api, notifier), test.event)
			assert.Equal(t, ResultError, result.Result, test.name)
			assert.Contains(t, result.Error, "❌ EC2 ERROR: ", test.name)
			assert.Equal(t, test.starts, test.api.starts, test.name)
			assert.Equal(t, test.stops, test.api.stops, test.name)
			require.NotEmpty(t, notifier.messages, test.name)
			assert.Equal(t, result.Error, notifier.messages[len(notifier.messages)-1], test.name)
		}
	}
}

func TestHandleWaitTimeoutMessage(t *testing.T) {
	api := &fakeEC2{states: states(ec2types.InstanceStateNamePending)}
	result := handle(t, newTestPower(api, &fakeSNS{}), `{"action": "start"}`)
	assert.Equal(t, &Result{
		Result: ResultError,
		Error:  "❌ EC2 ERROR: Waiter InstanceRunning failed: Max attempts exceeded",
	}, result)
	assert.Equal(t, 1+EC2WaitAttempts, api.describes)
}

func TestResultJSON(t *testing.T) {
	type test struct {
		result Result
		json   string
	}
	tests := []test{
		{Result{Result: ResultStarted}, `{"result": "started"}`},
		{Result{Result: ResultStatus, State: "running"}, `{"result": "status", "state": "running"}`},
		{Result{Result: ResultError, Error: "boom"}, `{"result": "error", "error": "boom"}`},
	}
	for _, test := range tests {
		out, err := json.Marshal(test.result)
		require.NoError(t, err)
		assert.JSONEq(t, test.json, string(out))
	}
}

func TestStateIcon(t *testing.T) {
	assert.Equal(t, "🟢", StateIcon(ec2types.InstanceStateNameRunning))
	for _, state := range []ec2types.InstanceStateName{"stopped", "pending", "stopping", "terminated", "Running", ""} {
		assert.Equal(t, "🛑", StateIcon(state), string(state))
	}
}
