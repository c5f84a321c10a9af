package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_parseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "all flags",
			args: []string{
				"-a", ":8000", "-g", ":9000", "-d", "postgres://db", "-s", "k",
				"-t", "30m", "-o", "https://a.example, https://b.example", "-l", "debug",
				"-u", "ak", "-p", "sk", "-b", "bkt", "-r", "eu-west-1", "-e", "http://minio:9000",
			},
			want: Config{
				EndpointAddrHTTP:            ":8000",
				EndpointAddrGRPC:            ":9000",
				DatabaseDSN:                 "postgres://db",
				SecretKey:                   "k",
				AccessTokenValidityDuration: 30 * time.Minute,
				AllowedOrigins:              []string{"https://a.example", "https://b.example"},
				LogLevel:                    "debug",
				S3AccessKey:                 "ak",
				S3SecretKey:                 "sk",
				S3Bucket:                    "bkt",
				S3Region:                    "eu-west-1",
				S3BaseEndpoint:              "http://minio:9000",
			},
		},
		{
			name: "unknown flags are skipped",
			args: []string{"-c", "cfg.json", "-x", "1", "-s=k"},
			want: Config{SecretKey: "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			require.NoError(t, parseFlags(&got, tt.args))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
