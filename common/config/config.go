package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aig-studio/artist-image-generator/common/env"
	"github.com/hashicorp/go-multierror"
)

var SystemName = "Artist Image Generator"

var (
	ServiceName     string
	InstanceId      string
	DebugEnabled    bool
	DebugSQLEnabled bool
	// AdminToken guards the /api routes. Empty disables the check.
	AdminToken string
)

var (
	SQLDSN            string
	SQLitePath        string
	SQLiteBusyTimeout int
	RedisConnString   string
	// OptionCacheSeconds is the redis TTL of cached options.
	OptionCacheSeconds int
)

var (
	OpenAIBaseURL string
	RelayProxy    string
	RelayTimeout  int // unit is second
)

var (
	LicenseServer         string
	LicenseCustomerKey    string
	LicenseCustomerSecret string
	LicenseProductIds     []int
	LicenseCheckSpec      string
)

var (
	UploadDir        string
	UploadBaseURL    string
	MaxDownloadBytes int64
)

var (
	S3Bucket    string
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
	S3Prefix    string
)

var (
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
)

func init() {
	Reload()
}

// Reload reads every setting from the environment again, e.g. after a .env file was loaded.
func Reload() {
	ServiceName = env.String("SERVICE_NAME", "artist-image-generator")
	InstanceId = env.String("INSTANCE_ID", hostname())
	DebugEnabled = env.Bool("DEBUG", false)
	DebugSQLEnabled = env.Bool("DEBUG_SQL", false)
	AdminToken = os.Getenv("ADMIN_TOKEN")

	SQLDSN = os.Getenv("SQL_DSN")
	SQLitePath = env.String("SQLITE_PATH", "artist-image-generator.db")
	SQLiteBusyTimeout = env.Int("SQLITE_BUSY_TIMEOUT", 3000)
	RedisConnString = os.Getenv("REDIS_CONN_STRING")
	OptionCacheSeconds = env.Int("OPTION_CACHE_SECONDS", 10*60)

	OpenAIBaseURL = env.String("OPENAI_BASE_URL", "https://api.openai.com/v1")
	RelayProxy = os.Getenv("RELAY_PROXY")
	RelayTimeout = env.Int("RELAY_TIMEOUT", 0)

	LicenseServer = env.String("AIG_LICENCE_SERVER", "https://developpeur-web.site")
	LicenseCustomerKey = os.Getenv("AIG_CUSTOMER_KEY")
	LicenseCustomerSecret = os.Getenv("AIG_CUSTOMER_SECRET")
	LicenseProductIds = env.Ints("AIG_PRODUCT_IDS", []int{26733})
	LicenseCheckSpec = env.String("LICENSE_CHECK_SPEC", "@daily")

	UploadDir = env.String("UPLOAD_DIR", "./uploads")
	UploadBaseURL = "/" + strings.Trim(env.String("UPLOAD_BASE_URL", "/uploads"), "/")
	MaxDownloadBytes = int64(env.Int("MAX_DOWNLOAD_MB", 20)) << 20

	S3Bucket = os.Getenv("S3_BUCKET")
	S3Endpoint = os.Getenv("S3_ENDPOINT")
	S3Region = env.String("S3_REGION", "auto")
	S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	S3SecretKey = os.Getenv("S3_SECRET_KEY")
	S3PublicURL = os.Getenv("S3_PUBLIC_URL")
	S3Prefix = env.String("S3_PREFIX", "media")

	HTTPReadTimeout = time.Duration(env.Int("HTTP_READ_TIMEOUT", 60)) * time.Second
	HTTPWriteTimeout = time.Duration(env.Int("HTTP_WRITE_TIMEOUT", 300)) * time.Second
}

// Validate reports every configuration problem at once.
func Validate() error {
	var result *multierror.Error
	if !isHTTPURL(OpenAIBaseURL) {
		result = multierror.Append(result, errors.New("OPENAI_BASE_URL must be an http(s) url"))
	}
	if !isHTTPURL(LicenseServer) {
		result = multierror.Append(result, errors.New("AIG_LICENCE_SERVER must be an http(s) url"))
	}
	if S3Bucket != "" && (S3AccessKey == "" || S3SecretKey == "") {
		result = multierror.Append(result, errors.New("S3_BUCKET requires S3_ACCESS_KEY and S3_SECRET_KEY"))
	}
	if S3Endpoint != "" && !isHTTPURL(S3Endpoint) {
		result = multierror.Append(result, errors.New("S3_ENDPOINT must be an http(s) url"))
	}
	if RelayTimeout < 0 {
		result = multierror.Append(result, errors.New("RELAY_TIMEOUT must not be negative"))
	}
	if MaxDownloadBytes <= 0 {
		result = multierror.Append(result, errors.New("MAX_DOWNLOAD_MB must be positive"))
	}
	return result.ErrorOrNil()
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
