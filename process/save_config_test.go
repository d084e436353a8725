package process

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/opdss/addressbook/cfgstruct"
)

func TestSaveConfig(t *testing.T) {
	var cfg struct {
		Db struct {
			Driver      string        `default:"sqlite3"`
			MaxIdleConn int           `default:"10"`
			Lifetime    time.Duration `default:"1h"`
		}
		Lock struct {
			Enabled bool `default:"false"`
		}
		Secret string `internal:"true"`
	}
	cmd := &cobra.Command{Use: "setup"}
	cmd.Flags().String("config-dir", "", "")
	cfgstruct.Bind(cmd.Flags(), &cfg)

	out := filepath.Join(t.TempDir(), DefaultCfgFilename)
	require.NoError(t, SaveConfig(cmd, out, map[string]interface{}{"storage.driver": "local"}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.NotContains(t, got, "config-dir")
	assert.NotContains(t, got, "secret")

	dbv, ok := got["db"].(map[interface{}]interface{})
	require.True(t, ok)
	assert.Equal(t, "sqlite3", dbv["driver"])
	assert.Equal(t, 10, dbv["max-idle-conn"])
	assert.Equal(t, "1h0m0s", dbv["lifetime"])

	lock, ok := got["lock"].(map[interface{}]interface{})
	require.True(t, ok)
	assert.Equal(t, false, lock["enabled"])

	st, ok := got["storage"].(map[interface{}]interface{})
	require.True(t, ok)
	assert.Equal(t, "local", st["driver"])
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addressbook.log")
	logger, err := NewLogger(LogConfig{Level: "debug", Encoding: "json", Output: path, MaxSize: 1})
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
