package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// setupLogs builds the stderr logger. Debug output is only enabled with
// -debug.
func setupLogs(debug bool) (*zap.Logger, *zap.SugaredLogger) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	log, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		panic("can't zap")
	}
	log.Debug(fmt.Sprintf("Zap logging at %s", config.Level))

	return log, log.Sugar()
}

var fatalColor = color.New(color.FgRed)

// fatal prints err in red on w.
func fatal(w io.Writer, err error) {
	fatalColor.Fprintf(w, "%s: %v\n", pname, err)
}

func fatalExit(code int, err error) {
	fatal(os.Stderr, err)
	os.Exit(code)
}
