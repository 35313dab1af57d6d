package logutils

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Log is the logger used by the package.
var Log = logrus.New()

// Fields is the type of logrus.Fields.
type Fields = logrus.Fields

//nolint:gochecknoinits // This is the only place where we should set the log level.
func init() {
	Log.SetLevel(level(os.Getenv("PROJECTHUB_LOG_LEVEL"), gin.Mode()))
	if gin.Mode() == gin.ReleaseMode {
		Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat:           "2006-01-02 15:04:05",
			ForceColors:               true,
			EnvironmentOverrideColors: true,
			FullTimestamp:             true,
		})
	}
	Log.SetReportCaller(true)
}

// level picks the log level from an explicit setting, falling back to debug
// in gin debug mode and info otherwise.
func level(setting, mode string) logrus.Level {
	if setting != "" {
		if lvl, err := logrus.ParseLevel(setting); err == nil {
			return lvl
		}
	}
	if mode == gin.DebugMode {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// WithEvent returns an entry tagged with a sync or notification event.
func WithEvent(name, id string) *logrus.Entry {
	return Log.WithFields(Fields{"event": name, "eventID": id})
}
