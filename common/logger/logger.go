package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/helper"
	"github.com/gin-gonic/gin"
)

const (
	loggerDEBUG = "debug"
	loggerINFO  = "info"
	loggerWarn  = "warn"
	loggerError = "error"
	loggerFatal = "fatal"
)

// LogEntry is one JSON log line.
type LogEntry struct {
	Ts        string `json:"ts"`
	Level     string `json:"level"`
	RequestId string `json:"request_id,omitempty"`
	Msg       string `json:"msg"`
	Service   string `json:"service"`
	Instance  string `json:"instance"`
}

// switchWriter forwards writes to a target that rotation can replace.
type switchWriter struct {
	mu     sync.RWMutex
	target io.Writer
}

func (w *switchWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.target.Write(p)
}

func (w *switchWriter) swap(target io.Writer) {
	w.mu.Lock()
	w.target = target
	w.mu.Unlock()
}

var setupLogLock sync.Mutex
var setupLogDate string
var generalLogFile *os.File
var errorLogFile *os.File
var generalWriter = &switchWriter{target: os.Stdout}
var errorWriter = &switchWriter{target: os.Stderr}

// SetupLogger points gin's writers at the daily log files under LogDir.
// It is a no-op when LogDir is empty or the files for today are already open.
// gin's writers are assigned once; later rotations swap the files behind them.
func SetupLogger() {
	if LogDir == "" {
		return
	}
	setupLogLock.Lock()
	defer setupLogLock.Unlock()

	dateStr := time.Now().Format("20060102")
	if dateStr == setupLogDate {
		return
	}

	generalLogPath := filepath.Join(LogDir, fmt.Sprintf("aig-%s.log", dateStr))
	fd, err := os.OpenFile(generalLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("failed to open general log file")
	}
	errorLogPath := filepath.Join(LogDir, fmt.Sprintf("aig-error-%s.log", dateStr))
	errFd, err := os.OpenFile(errorLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("failed to open error log file")
	}

	generalWriter.swap(io.MultiWriter(os.Stdout, fd))
	errorWriter.swap(io.MultiWriter(os.Stderr, errFd))
	if generalLogFile != nil {
		generalLogFile.Close()
	}
	if errorLogFile != nil {
		errorLogFile.Close()
	}
	if setupLogDate == "" {
		gin.DefaultWriter = generalWriter
		gin.DefaultErrorWriter = errorWriter
	}
	generalLogFile = fd
	errorLogFile = errFd
	setupLogDate = dateStr
}

func writeJSONLog(writer io.Writer, level, requestId, msg string) {
	entry := LogEntry{
		Ts:        time.Now().Format(time.RFC3339Nano),
		Level:     level,
		RequestId: requestId,
		Msg:       msg,
		Service:   config.ServiceName,
		Instance:  config.InstanceId,
	}
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		_, _ = fmt.Fprintf(writer, `{"ts":"%s","level":"%s","msg":"json marshal error","service":"%s","instance":"%s"}`+"\n",
			entry.Ts, level, config.ServiceName, config.InstanceId)
		return
	}
	_, _ = writer.Write(append(jsonBytes, '\n'))
}

func SysLog(s string) {
	writeJSONLog(gin.DefaultWriter, loggerINFO, "", s)
}

func SysError(s string) {
	writeJSONLog(gin.DefaultErrorWriter, loggerError, "", s)
}

func Debug(ctx context.Context, msg string) {
	if config.DebugEnabled {
		logHelper(ctx, loggerDEBUG, msg)
	}
}

func Info(ctx context.Context, msg string) {
	logHelper(ctx, loggerINFO, msg)
}

func Warn(ctx context.Context, msg string) {
	logHelper(ctx, loggerWarn, msg)
}

func Error(ctx context.Context, msg string) {
	logHelper(ctx, loggerError, msg)
}

func Debugf(ctx context.Context, format string, a ...any) {
	Debug(ctx, fmt.Sprintf(format, a...))
}

func Infof(ctx context.Context, format string, a ...any) {
	Info(ctx, fmt.Sprintf(format, a...))
}

func Warnf(ctx context.Context, format string, a ...any) {
	Warn(ctx, fmt.Sprintf(format, a...))
}

func Errorf(ctx context.Context, format string, a ...any) {
	Error(ctx, fmt.Sprintf(format, a...))
}

func logHelper(ctx context.Context, level string, msg string) {
	writer := gin.DefaultWriter
	if level == loggerError {
		writer = gin.DefaultErrorWriter
	}

	id := ""
	if ctx != nil {
		if v := ctx.Value(RequestIdKey); v != nil {
			id = fmt.Sprintf("%v", v)
		}
	}
	if id == "" {
		id = helper.GenRequestID()
	}

	writeJSONLog(writer, level, id, msg)
	// rotates the files once the date changes
	SetupLogger()
}

func FatalLog(v ...any) {
	msg := fmt.Sprint(v...)
	writeJSONLog(gin.DefaultErrorWriter, loggerFatal, "", msg)
	os.Exit(1)
}
