package lib

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// string values only, anything else counts as absent
func actionFromJSON(data []byte) string {
	var fields map[string]interface{}
	if json.Unmarshal(data, &fields) != nil {
		return ""
	}
	action, _ := fields["action"].(string)
	return action
}

// exact key lookup, a missing or mistyped value leaves v untouched
func eventField(fields map[string]json.RawMessage, key string, v interface{}) {
	if value, ok := fields[key]; ok {
		_ = json.Unmarshal(value, v)
	}
}

func actionFromBody(req events.APIGatewayProxyRequest) string {
	if req.Body == "" {
		return ""
	}
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return ""
		}
		body = decoded
	}
	return actionFromJSON(body)
}

// ActionFromEvent resolves the lowercased action of an invocation. The
// first non-empty value wins, looking at a top level "action" field, then
// at queryStringParameters, then at a json body. Api gateway and function
// url events share the same json keys so both are read the same way. Keys
// match exactly, so "Body" is not "body".
func ActionFromEvent(raw json.RawMessage) string {
	action := actionFromJSON(raw)
	if action == "" {
		var fields map[string]json.RawMessage
		_ = json.Unmarshal(raw, &fields)
		var req events.APIGatewayProxyRequest
		eventField(fields, "queryStringParameters", &req.QueryStringParameters)
		eventField(fields, "body", &req.Body)
		eventField(fields, "isBase64Encoded", &req.IsBase64Encoded)
		action = req.QueryStringParameters["action"]
		if action == "" {
			action = actionFromBody(req)
		}
	}
	return strings.ToLower(action)
}
