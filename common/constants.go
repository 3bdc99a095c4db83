package common

import "time"

var StartTime = time.Now().Unix()

// Version is overwritten at build time with -ldflags "-X .../common.Version=..."
var Version = "v0.0.0"

var (
	UsingSQLite     = false
	UsingPostgreSQL = false
	UsingMySQL      = false
)
