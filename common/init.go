package common

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
)

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	PrintHelp    = flag.Bool("help", false, "print help and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
)

func printHelp() {
	fmt.Println(config.SystemName + " " + Version + " - generate, vary and edit images through the OpenAI Images API.")
	fmt.Println("Usage: artist-image-generator [--port <port>] [--log-dir <log directory>] [--version] [--help]")
}

// ParseFlags parses the command line and prepares the log directory.
// Command line wins over LOG_DIR; no directory means stdout only.
func ParseFlags() {
	flag.Parse()

	if *PrintVersion {
		fmt.Println(Version)
		os.Exit(0)
	}
	if *PrintHelp {
		printHelp()
		os.Exit(0)
	}

	logDir := *LogDir
	if logDir == "" {
		logDir = os.Getenv("LOG_DIR")
	}
	if logDir == "" {
		return
	}
	logDir, err := filepath.Abs(logDir)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err = os.MkdirAll(logDir, 0777); err != nil {
			log.Fatal(err)
		}
	}
	logger.LogDir = logDir
}
