package glob

import (
	"os"
	"time"
)

var (
	Uptime time.Time

	LogDesc *os.File
	LogName string

	ServerRunning        bool
	ConfigPath           *string
	DoRegisterCommands   *bool
	DoDeregisterCommands *bool
	TestMode             *bool
)
