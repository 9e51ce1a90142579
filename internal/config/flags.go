package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-s server base URL
//	-d local cache database DSN
//	-creds-dir credentials directory
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retry-attempts transient-failure retry attempts
//	-cache-max-age cache entry max age (e.g., "1h")
//	-sync-interval background sync interval (e.g., "15m")
func ParseFlags() *ClientConfig {
	var serverBaseURL string
	var databaseDSN string
	var credentialsDir string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var retryAttempts int
	var cacheMaxAge time.Duration
	var syncInterval time.Duration

	flag.StringVar(&serverBaseURL, "s", "", "Classroom server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local cache database DSN")
	flag.StringVar(&credentialsDir, "creds-dir", "", "Credentials directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&retryAttempts, "retry-attempts", 0, "Transient-failure retry attempts")
	flag.DurationVar(&cacheMaxAge, "cache-max-age", 0, "Cache entry max age (e.g., 1h)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 15m)")

	flag.Parse()

	return &ClientConfig{
		Adapter: Adapter{
			BaseURL:        serverBaseURL,
			RequestTimeout: requestTimeout,
			RetryAttempts:  retryAttempts,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			CredentialsDir: credentialsDir,
		},
		Cache: Cache{
			MaxAge: cacheMaxAge,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
