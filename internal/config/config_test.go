package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// point the loader away from any real configs/config.yaml
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("JOB_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoadRequiresWebhookURL(t *testing.T) {
	isolate(t)
	t.Setenv("JOB_WEBHOOK_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JOB_WEBHOOK_URL")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://remoteok.com/api", cfg.SourceURL)
	assert.Equal(t, 3, cfg.FreshnessHours)
	assert.Equal(t, 3*time.Hour, cfg.Window())
	assert.Equal(t, 5, cfg.MaxSendsPerRun)
	assert.Equal(t, "sent_jobs.json", cfg.LedgerPath)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.SendTimeout)
	assert.Contains(t, cfg.IncludeKeywords, "automation")
	assert.Contains(t, cfg.ExcludeKeywords, "senior")
	assert.False(t, cfg.MustBeRemote)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")
	t.Setenv("JOB_FRESHNESS_HOURS", "6")
	t.Setenv("JOB_MAX_SENDS", "10")
	t.Setenv("JOB_INCLUDE_KEYWORDS", "golang,kubernetes")
	t.Setenv("JOB_FETCH_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.FreshnessHours)
	assert.Equal(t, 10, cfg.MaxSendsPerRun)
	assert.Equal(t, []string{"golang", "kubernetes"}, cfg.IncludeKeywords)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
}

func TestLoadYAMLThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
freshness_hours: 12
max_sends_per_run: 2
sent_jobs_file: /tmp/custom.json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	t.Setenv("JOB_CONFIG_PATH", path)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")
	t.Setenv("JOB_MAX_SENDS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.FreshnessHours, "from YAML")
	assert.Equal(t, "/tmp/custom.json", cfg.LedgerPath, "from YAML")
	assert.Equal(t, 7, cfg.MaxSendsPerRun, "env overrides YAML")
}

func TestLoadRejectsBadValues(t *testing.T) {
	isolate(t)
	t.Setenv("JOB_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")
	t.Setenv("JOB_FRESHNESS_HOURS", "0")

	_, err := Load()
	assert.Error(t, err)
}
