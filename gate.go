package gate

import (
	"embed"
	"strings"
)

//go:embed VERSION
var f embed.FS

func GetVersion() string {
	v := "0.4.0"

	data, err := f.ReadFile("VERSION")
	if err != nil {
		return v
	}

	return strings.TrimSpace(string(data))
}
