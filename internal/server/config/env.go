package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config with pointer fields so that only variables
// actually present in the environment overlay earlier layers.
type envConfig struct {
	EndpointAddr                *string        `envconfig:"ENDPOINT_ADDR"`
	DatabaseDSN                 *string        `envconfig:"DATABASE_DSN"`
	SecretKey                   *string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration *time.Duration `envconfig:"ACCESS_TOKEN_VALIDITY_DURATION"`
	S3RootUser                  *string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword              *string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                    *string        `envconfig:"S3_BUCKET"`
	S3Region                    *string        `envconfig:"S3_REGION"`
	S3BaseEndpoint              *string        `envconfig:"S3_BASE_ENDPOINT"`
	S3PublicBaseURL             *string        `envconfig:"S3_PUBLIC_BASE_URL"`
	UploadSizeLimit             *int64         `envconfig:"UPLOAD_SIZE_LIMIT"`
}

// parseEnv overlays configuration from environment variables prefixed with
// FILEKEEPER_. A .env file in the working directory is loaded first when
// present; a missing .env file is not an error.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	var e envConfig
	if err := envconfig.Process("filekeeper", &e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != nil {
		config.EndpointAddr = *e.EndpointAddr
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.SecretKey != nil {
		config.SecretKey = *e.SecretKey
	}
	if e.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *e.AccessTokenValidityDuration
	}
	if e.S3RootUser != nil {
		config.S3RootUser = *e.S3RootUser
	}
	if e.S3RootPassword != nil {
		config.S3RootPassword = *e.S3RootPassword
	}
	if e.S3Bucket != nil {
		config.S3Bucket = *e.S3Bucket
	}
	if e.S3Region != nil {
		config.S3Region = *e.S3Region
	}
	if e.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *e.S3BaseEndpoint
	}
	if e.S3PublicBaseURL != nil {
		config.S3PublicBaseURL = *e.S3PublicBaseURL
	}
	if e.UploadSizeLimit != nil {
		config.UploadSizeLimit = *e.UploadSizeLimit
	}
}
