// Package cdklogger records synthesis diagnostics as CDK annotations, which
// `cdk synth` prints next to the construct path, and mirrors them to zap at debug level.
package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"
)

type level string

const (
	levelInfo    level = "info"
	levelWarning level = "warning"
)

// LogInfo adds an INFO annotation to scope.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	annotate(scope, levelInfo, message(scope, constructID, format, args...))
}

// LogWarning adds a WARNING annotation to scope.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	annotate(scope, levelWarning, message(scope, constructID, format, args...))
}

// message prefixes "[constructID]" unless the scope path already ends with it.
func message(scope constructs.Construct, constructID string, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	if constructID == "" {
		return msg
	}
	cdkPath := *scope.Node().Path()
	if strings.HasSuffix(cdkPath, "/"+constructID) || cdkPath == constructID {
		return msg
	}
	return fmt.Sprintf("[%s] %s", constructID, msg)
}

func annotate(scope constructs.Construct, lvl level, msg string) {
	annotations := awscdk.Annotations_Of(scope)
	switch lvl {
	case levelWarning:
		annotations.AddWarning(jsii.String(msg))
	default:
		annotations.AddInfo(jsii.String(msg))
	}

	zap.L().Debug(msg, zap.String("path", *scope.Node().Path()), zap.String("level", string(lvl)))
}
