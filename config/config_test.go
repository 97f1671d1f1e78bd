package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("ADMIN_EMAILS", " Admin@AutoNear.ph , ,ops@autonear.ph")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "not-a-duration")
	for _, key := range []string{"SERVER_PORT", "REDIS_HOST", "AWS_S3_BUCKET", "RESET_PURGE_SCHEDULE", "SMTP_HOST", "SMTP_PORT", "SMTP_FROM"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"Admin@AutoNear.ph", "ops@autonear.ph"}, cfg.Admin.Emails)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "0 * * * *", cfg.Jobs.ResetPurgeSchedule)
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, "587", cfg.Mail.SMTPPort)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "no-reply@autonear.ph")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.JWT.Secret)
	assert.True(t, cfg.Mail.Enabled())
}

func TestLoadRequiresMailInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_FROM", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SMTP_HOST")

	t.Setenv("ENVIRONMENT", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Mail.Enabled())
}

func TestDSNAndRedisAddr(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "autonear", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=autonear sslmode=disable", db.DSN())

	redis := RedisConfig{Host: "cache", Port: "6379"}
	assert.True(t, redis.Enabled())
	assert.Equal(t, "cache:6379", redis.Addr())
}
