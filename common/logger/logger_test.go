package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureWriters(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := gin.DefaultWriter, gin.DefaultErrorWriter
	gin.DefaultWriter, gin.DefaultErrorWriter = out, errOut
	t.Cleanup(func() {
		gin.DefaultWriter, gin.DefaultErrorWriter = prevOut, prevErr
	})
	return out, errOut
}

func TestInfoCarriesRequestId(t *testing.T) {
	out, _ := captureWriters(t)
	ctx := context.WithValue(context.Background(), RequestIdKey, "req-1")

	Infof(ctx, "generated %d images", 3)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "req-1", entry.RequestId)
	assert.Equal(t, "generated 3 images", entry.Msg)
}

func TestErrorGoesToErrorWriter(t *testing.T) {
	out, errOut := captureWriters(t)

	Error(context.Background(), "upstream failed")

	assert.Zero(t, out.Len())
	var entry LogEntry
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &entry))
	assert.Equal(t, "error", entry.Level)
	assert.NotEmpty(t, entry.RequestId)
}

func TestSysLogHasNoRequestId(t *testing.T) {
	out, _ := captureWriters(t)

	SysLog("started")

	var entry LogEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Empty(t, entry.RequestId)
	assert.Equal(t, "started", entry.Msg)
}

func TestSetupLoggerRotatesBehindStableWriters(t *testing.T) {
	prevOut, prevErr := gin.DefaultWriter, gin.DefaultErrorWriter
	prevDir := LogDir
	LogDir = t.TempDir()
	t.Cleanup(func() {
		setupLogLock.Lock()
		defer setupLogLock.Unlock()
		generalWriter.swap(os.Stdout)
		errorWriter.swap(os.Stderr)
		generalLogFile.Close()
		errorLogFile.Close()
		generalLogFile, errorLogFile, setupLogDate = nil, nil, ""
		gin.DefaultWriter, gin.DefaultErrorWriter = prevOut, prevErr
		LogDir = prevDir
	})

	SetupLogger()
	require.Same(t, generalWriter, gin.DefaultWriter)
	require.Same(t, errorWriter, gin.DefaultErrorWriter)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Info(context.Background(), "rotating")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		setupLogLock.Lock()
		setupLogDate = "19700101"
		setupLogLock.Unlock()
		SetupLogger()
	}
	wg.Wait()

	assert.Same(t, generalWriter, gin.DefaultWriter)
	SysLog("after rotation")
	raw, err := os.ReadFile(filepath.Join(LogDir, "aig-"+time.Now().Format("20060102")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "after rotation")
}
