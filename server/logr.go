package main

import (
	"os"
	"path/filepath"

	"github.com/mattermost/logr/v2"
	"github.com/mattermost/logr/v2/formatters"
	"github.com/mattermost/logr/v2/targets"
)

const transactionLogEnv = "MM_EMOJIMIX_LOG_FILESPEC"

// CreateTransactionLogger creates a Logr that writes every catalog probe as JSON to the file
// named by MM_EMOJIMIX_LOG_FILESPEC. It returns nil when the variable is unset.
func CreateTransactionLogger() (*logr.Logr, error) {
	filespec := os.Getenv(transactionLogEnv)
	if filespec == "" {
		return nil, nil
	}

	lgr, err := logr.New(
		logr.MaxQueueSize(1000),
	)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filespec)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	jsonFormatter := &formatters.JSON{
		EnableCaller: true,
	}

	fileTarget := targets.NewFileTarget(targets.FileOptions{
		Filename:   filespec,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     5, // days
		Compress:   true,
	})

	filter := logr.NewCustomFilter(logr.Debug, logr.Info, logr.Warn, logr.Error, logr.Fatal, logr.Panic)

	if err := lgr.AddTarget(fileTarget, "emojimix-probes", filter, jsonFormatter, 100); err != nil {
		return nil, err
	}

	return lgr, nil
}
