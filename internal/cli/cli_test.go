package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jiobot/internal/config"
)

func TestLoadRuntime_FlagOverrides(t *testing.T) {
	t.Setenv("JIOBOT_MODE", "webhook")
	t.Setenv("JIOBOT_STORE", "memory")

	cmd := ServeCmd()
	require.NoError(t, cmd.Flags().Set("mode", "polling"))
	require.NoError(t, cmd.Flags().Set("store", "sqlite"))

	cfg, logger, err := loadRuntime(cmd)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, config.ModePolling, cfg.Mode)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
}

func TestLoadRuntime_EnvWinsWithoutFlags(t *testing.T) {
	t.Setenv("JIOBOT_MODE", "polling")

	cfg, _, err := loadRuntime(ServeCmd())
	require.NoError(t, err)
	assert.Equal(t, config.ModePolling, cfg.Mode)
}

func TestLoadRuntime_BadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouty")

	_, _, err := loadRuntime(ServeCmd())
	assert.Error(t, err)
}

func TestServe_InvalidConfig(t *testing.T) {
	t.Setenv("JIOBOT_MODE", "webhook")
	t.Setenv("SECRET_TOKEN", "")

	cmd := ServeCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "SECRET_TOKEN")
}

func TestWebhookSet_RequiresURL(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")

	cmd := WebhookCmd()
	cmd.SetArgs([]string{"set"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "no webhook url")
}

func TestWebhookCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range WebhookCmd().Commands() {
		names[c.Name()] = true
	}
	assert.Equal(t, map[string]bool{"set": true, "info": true, "delete": true}, names)
}
