package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "ec2-report@example.com", cfg.Email.From)
	assert.Equal(t, "AWS Underutilized EC2 Report", cfg.Email.Subject)
	assert.Equal(t, "ec2_underutilized_report.csv", cfg.Report.OutputPath)
	assert.Empty(t, cfg.Email.Recipient)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
region: eu-west-1
profile: reporting
email:
  recipient: ops@example.com
  subject: Weekly EC2 review
report:
  output_path: /tmp/report.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "reporting", cfg.Profile)
	assert.Equal(t, "ops@example.com", cfg.Email.Recipient)
	assert.Equal(t, "Weekly EC2 review", cfg.Email.Subject)
	assert.Equal(t, "/tmp/report.csv", cfg.Report.OutputPath)
	// Untouched keys keep their defaults.
	assert.Equal(t, "ec2-report@example.com", cfg.Email.From)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ATLAS_REGION", "ap-southeast-2")
	t.Setenv("ATLAS_EMAIL_RECIPIENT", "fin-ops@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, "fin-ops@example.com", cfg.Email.Recipient)
}
