package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger behind the request helpers.
var Log = zap.NewNop()

const (
	// RequestIDKey holds the request id in the gin context.
	RequestIDKey = "request_id"
	// RequestIDHeader is read from the caller and echoed on every response.
	RequestIDHeader = "X-Request-ID"
)

// Initialize builds the logger for env without an extra sink.
func Initialize(env string) *zap.Logger {
	return InitializeWithWriter(env, nil)
}

// InitializeWithWriter builds the process logger. Production writes JSON to
// stdout, other environments a colored console. When extra is set, every
// entry is also written to it as JSON. LOG_LEVEL overrides the default level.
func InitializeWithWriter(env string, extra io.Writer) *zap.Logger {
	Log = build(env, os.Getenv("LOG_LEVEL"), os.Stdout, extra)
	zap.ReplaceGlobals(Log)
	return Log
}

func build(env, level string, out, extra io.Writer) *zap.Logger {
	production := env == "production"
	lvl := zap.NewAtomicLevelAt(defaultLevel(production))
	if level != "" {
		_ = lvl.UnmarshalText([]byte(strings.ToLower(level)))
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.TimeKey = "timestamp"
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var primary zapcore.Encoder
	if production {
		primary = zapcore.NewJSONEncoder(jsonCfg)
	} else {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		primary = zapcore.NewConsoleEncoder(devCfg)
	}

	cores := []zapcore.Core{zapcore.NewCore(primary, zapcore.AddSync(out), lvl)}
	if extra != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(extra), lvl))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if !production {
		opts = append(opts, zap.Development())
	}
	return zap.New(zapcore.NewTee(cores...), opts...)
}

func defaultLevel(production bool) zapcore.Level {
	if production {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// RequestID assigns every request an id, reusing the caller's X-Request-ID
// when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Error logs msg with the request id found in ctx and err.
func Error(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	withRequest(ctx).Error(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	withRequest(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	withRequest(ctx).Warn(msg, fields...)
}

func withRequest(ctx context.Context) *zap.Logger {
	id := "unknown"
	if c, ok := ctx.(*gin.Context); ok {
		if v := c.GetString(RequestIDKey); v != "" {
			id = v
		}
	}
	return Log.WithOptions(zap.AddCallerSkip(1)).With(zap.String("request_id", id))
}
