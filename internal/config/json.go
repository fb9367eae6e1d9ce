package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gmfgallery/internal/flagx"
	"github.com/dmitrijs2005/gmfgallery/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Absent keys
// leave the current value untouched.
//
//	{
//	  "database_dsn": "postgres://...",
//	  "s3_bucket": "gallery",
//	  "s3_presign_expiry": "168h",
//	  "strict_listing": true
//	}
type JsonConfig struct {
	DatabaseDSN       string          `json:"database_dsn"`
	MetadataBackend   string          `json:"metadata_backend"`
	BlobBackend       string          `json:"blob_backend"`
	LocalStateBackend string          `json:"local_state_backend"`
	LocalStatePath    string          `json:"local_state_path"`
	KeyringService    string          `json:"keyring_service"`
	S3RootUser        string          `json:"s3_root_user"`
	S3RootPassword    string          `json:"s3_root_password"`
	S3Bucket          string          `json:"s3_bucket"`
	S3Region          string          `json:"s3_region"`
	S3BaseEndpoint    string          `json:"s3_base_endpoint"`
	S3PublicBaseURL   string          `json:"s3_public_base_url"`
	S3PresignExpiry   *timex.Duration `json:"s3_presign_expiry"`
	DefaultCredential string          `json:"default_credential"`
	MinPasswordLength *int            `json:"min_password_length"`
	StrictListing     *bool           `json:"strict_listing"`
	LogFile           string          `json:"log_file"`
	LogLevel          string          `json:"log_level"`
	LogFormat         string          `json:"log_format"`
}

// parseJson overlays values from the file named by -c / -config, if any.
// An unreadable or malformed file panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MetadataBackend, c.MetadataBackend)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.LocalStateBackend, c.LocalStateBackend)
	setString(&config.LocalStatePath, c.LocalStatePath)
	setString(&config.KeyringService, c.KeyringService)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.DefaultCredential, c.DefaultCredential)
	setString(&config.LogFile, c.LogFile)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.S3PresignExpiry != nil {
		config.S3PresignExpiry = c.S3PresignExpiry.Duration
	}
	if c.MinPasswordLength != nil {
		config.MinPasswordLength = *c.MinPasswordLength
	}
	if c.StrictListing != nil {
		config.StrictListing = *c.StrictListing
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
