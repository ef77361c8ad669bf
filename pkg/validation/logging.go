package validation

import (
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/leadmarket/leadmarket/pkg/apis/options"
	"github.com/leadmarket/leadmarket/pkg/logger"
)

// SetupLogger configures the global logger from the logging options. It is
// called once at startup, before any request handling begins.
func SetupLogger(o *options.Options) {
	l := o.Logging

	logger.SetStandardEnabled(l.StandardEnabled)
	logger.SetStandardTemplate(l.StandardFormat)
	logger.SetAuthEnabled(l.AuthEnabled)
	logger.SetAuthTemplate(l.AuthFormat)
	logger.SetReqEnabled(l.RequestEnabled)
	logger.SetReqTemplate(l.RequestFormat)
	logger.SetExcludePaths(l.ExcludePaths)

	flags := logger.Lshortfile
	if !l.LocalTime {
		flags |= logger.LUTC
	}
	logger.SetFlags(flags)

	if l.File.Filename != "" {
		// Logging to a file, rotate with lumberjack
		writer := &lumberjack.Logger{
			Filename:   l.File.Filename,
			MaxSize:    l.File.MaxSize,
			MaxBackups: l.File.MaxBackups,
			MaxAge:     l.File.MaxAge,
			Compress:   l.File.Compress,
			LocalTime:  l.LocalTime,
		}
		logger.SetOutput(writer)
		logger.SetErrOutput(writer)
	} else {
		logger.SetOutput(os.Stdout)
		logger.SetErrOutput(os.Stderr)
	}
}
