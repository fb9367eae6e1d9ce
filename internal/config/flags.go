package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gmfgallery/internal/flagx"
)

var knownFlags = []string{
	"-d", "-m", "-o", "-l", "-f", "-k",
	"-u", "-p", "-b", "-g", "-e", "-w", "-x",
	"-strict", "-log-file", "-log-level",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-m string   metadata backend (postgres|memory)
//	-o string   blob backend (s3|memory)
//	-l string   local state backend (sqlite|keyring)
//	-f string   local state sqlite file
//	-k string   keyring service name
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-w string   public base URL of the bucket
//	-x int      presigned URL lifetime, hours
//	-strict     report gallery listing failures
//	-log-file, -log-level
//
// Unknown arguments are filtered out first; a malformed value panics.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MetadataBackend, "m", config.MetadataBackend, "metadata backend")
	fs.StringVar(&config.BlobBackend, "o", config.BlobBackend, "blob backend")
	fs.StringVar(&config.LocalStateBackend, "l", config.LocalStateBackend, "local state backend")
	fs.StringVar(&config.LocalStatePath, "f", config.LocalStatePath, "local state file")
	fs.StringVar(&config.KeyringService, "k", config.KeyringService, "keyring service")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public base URL of the bucket")
	presignHours := fs.Int("x", int(config.S3PresignExpiry.Hours()), "presigned URL lifetime (in hours)")
	fs.BoolVar(&config.StrictListing, "strict", config.StrictListing, "report gallery listing failures")
	fs.StringVar(&config.LogFile, "log-file", config.LogFile, "log file")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			config.S3PresignExpiry = time.Duration(*presignHours) * time.Hour
		}
	})
}
