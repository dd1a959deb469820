package lib

import (
	"encoding/json"
)

var Commands = make(map[string]func())

var Args = make(map[string]interface{ Description() string })

func PreviewString(preview bool) string {
	if !preview {
		return ""
	}
	return "preview: "
}

func Pformat(i interface{}) string {
	val, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	return string(val)
}
