package config

import (
	"encoding/json"
	"os"

	"github.com/wealthx/paydesk/internal/flagx"
	"github.com/wealthx/paydesk/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept "24h"-style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	AllowedOrigins              []string       `json:"allowed_origins"`
	MaxUploadBytes              int64          `json:"max_upload_bytes"`
	LogLevel                    string         `json:"log_level"`
	S3AccessKey                 string         `json:"s3_access_key"`
	S3SecretKey                 string         `json:"s3_secret_key"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3PublicBaseURL             string         `json:"s3_public_base_url"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUser                    string         `json:"smtp_user"`
	SMTPPassword                string         `json:"smtp_password"`
	MailFrom                    string         `json:"mail_from"`
	ContactRecipient            string         `json:"contact_recipient"`
}

// parseJson overlays the file named by -c/-config onto config. Keys absent
// from the file keep their current values. No flag, no change.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := fromConfig(config)
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}
	c.apply(config)
	return nil
}

func fromConfig(config *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:            config.EndpointAddrHTTP,
		EndpointAddrGRPC:            config.EndpointAddrGRPC,
		DatabaseDSN:                 config.DatabaseDSN,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: config.AccessTokenValidityDuration},
		BcryptCost:                  config.BcryptCost,
		AllowedOrigins:              config.AllowedOrigins,
		MaxUploadBytes:              config.MaxUploadBytes,
		LogLevel:                    config.LogLevel,
		S3AccessKey:                 config.S3AccessKey,
		S3SecretKey:                 config.S3SecretKey,
		S3Bucket:                    config.S3Bucket,
		S3Region:                    config.S3Region,
		S3BaseEndpoint:              config.S3BaseEndpoint,
		S3PublicBaseURL:             config.S3PublicBaseURL,
		SMTPHost:                    config.SMTPHost,
		SMTPPort:                    config.SMTPPort,
		SMTPUser:                    config.SMTPUser,
		SMTPPassword:                config.SMTPPassword,
		MailFrom:                    config.MailFrom,
		ContactRecipient:            config.ContactRecipient,
	}
}

func (c *JsonConfig) apply(config *Config) {
	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.BcryptCost = c.BcryptCost
	config.AllowedOrigins = c.AllowedOrigins
	config.MaxUploadBytes = c.MaxUploadBytes
	config.LogLevel = c.LogLevel
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3PublicBaseURL = c.S3PublicBaseURL
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.MailFrom = c.MailFrom
	config.ContactRecipient = c.ContactRecipient
}
