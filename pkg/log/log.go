package log

import (
	"fmt"
	"os"

	"github.com/v2rayA/beego/v2/logs"
)

var Log *logs.BeeLogger

func init() {
	Log = logs.NewLogger(200)
	SetLogFile("console", "", 0, false, false)
	SetLogLevel("info")
}

// InitLog sets the log destination and level. logWay is "console" or "file".
func InitLog(logWay string, logFile string, logLevel string, maxDays int64, disableLogColor bool, disableLogTimestamp bool) {
	SetLogFile(logWay, logFile, maxDays, disableLogColor, disableLogTimestamp)
	SetLogLevel(logLevel)
}

func SetLogFile(logWay string, logFile string, maxDays int64, disableLogColor bool, disableLogTimestamp bool) {
	if logWay == "file" {
		params := fmt.Sprintf(`{"filename": %q, "maxdays": %v}`, logFile, maxDays)
		_ = Log.DelLogger("console")
		_ = Log.SetLogger("file", params)
	} else {
		params := fmt.Sprintf(`{"color": %v, "disabletimestamp": %v}`, !disableLogColor, disableLogTimestamp)
		_ = Log.DelLogger("console")
		_ = Log.SetLogger("console", params)
	}
}

func SetLogLevel(logLevel string) {
	level := 4 // warning
	switch logLevel {
	case "error":
		level = 3
	case "warn":
		level = 4
	case "info":
		level = 6
	case "debug", "trace":
		level = 7
	}
	Log.SetLevel(level)
}

func Trace(format string, v ...interface{}) {
	Log.Trace(format, v...)
}

func Debug(format string, v ...interface{}) {
	Log.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	Log.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	Log.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	Log.Error(format, v...)
}

func Fatal(format string, v ...interface{}) {
	Log.Critical(format, v...)
	Log.Flush()
	os.Exit(1)
}
