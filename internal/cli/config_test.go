package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := isolate(t)

	v, err := loadConfig(dir)
	require.NoError(t, err)
	s, err := readSettings(v)
	require.NoError(t, err)

	assert.Equal(t, types.BackendMemory, s.config.Backend)
	assert.Empty(t, s.config.MemberTypes)
	assert.Equal(t, types.DefaultMemberTypes(), s.config.Seeds())
	assert.True(t, s.options.EnforcePostOwner)
	assert.Equal(t, defaultLogLevel, s.logLevel)
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := filepath.Join(isolate(t), "nested")

	code, out, errOut := run(t, "", "init", "--config-dir", dir)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Wrote")
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	code, out, _ = run(t, "", "init", "--config-dir", dir)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "already exists")

	v, err := loadConfig(dir)
	require.NoError(t, err)
	s, err := readSettings(v)
	require.NoError(t, err)
	require.Len(t, s.config.MemberTypes, 2)
	assert.Equal(t, "business", s.config.MemberTypes[1].ID)
	assert.Equal(t, "5", s.config.MemberTypes[1].Discount.String())
	assert.Equal(t, 100, s.config.MemberTypes[1].MonthPostsLimit)
}

func TestReadSettingsFromFile(t *testing.T) {
	dir := isolate(t)
	yaml := `backend: sqlite
enforce_post_owner: false
log_level: debug
log_format: json
member_types:
  - id: gold
    discount: 12.5
    month_posts_limit: 1000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	v, err := loadConfig("")
	require.NoError(t, err)
	s, err := readSettings(v)
	require.NoError(t, err)

	assert.Equal(t, types.BackendSQLite, s.config.Backend)
	assert.False(t, s.options.EnforcePostOwner)
	assert.Equal(t, "json", s.logFormat)
	require.Len(t, s.config.MemberTypes, 1)
	assert.Equal(t, "12.5", s.config.MemberTypes[0].Discount.String())
}

func TestReadSettingsEnvOverride(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ROSTER_BACKEND", "sqlite")
	t.Setenv("ROSTER_ENFORCE_POST_OWNER", "false")

	v, err := loadConfig(dir)
	require.NoError(t, err)
	s, err := readSettings(v)
	require.NoError(t, err)
	assert.Equal(t, types.BackendSQLite, s.config.Backend)
	assert.False(t, s.options.EnforcePostOwner)
}

func TestReadSettingsRejectsBadSeeds(t *testing.T) {
	dir := isolate(t)
	yaml := `member_types:
  - id: gold
    discount: plenty
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	_, err = readSettings(v)
	assert.ErrorIs(t, err, types.ErrMemberTypeInvalid)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(os.Stderr, "debug", "json")
	assert.NoError(t, err)
	_, err = newLogger(os.Stderr, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(os.Stderr, "info", "xml")
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "roster.log")
	t.Setenv("ROSTER_LOG_FILE", logPath)
	t.Setenv("ROSTER_LOG_LEVEL", "debug")

	code, _, stderr := run(t, "", "member-type", "list")
	require.Equal(t, exitSuccess, code, stderr)
	assert.NotContains(t, stderr, "store opened")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "store opened")
}
