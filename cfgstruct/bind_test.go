package cfgstruct

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Driver  string        `help:"driver" default:"sqlite3"`
	Dsn     string        `help:"dsn" default:"$ROOT/sqlite.db"`
	Level   string        `help:"level" default:"info" releaseDefault:"warn"`
	Enabled bool          `help:"enabled" default:"true"`
	MaxSize int           `help:"max size" default:"100"`
	Timeout time.Duration `help:"timeout" default:"1h"`
	Hosts   []string      `help:"hosts" default:"a,b"`
	Secret  string        `help:"secret" internal:"true"`
	Nested  struct {
		AccessKeyID string  `help:"key"`
		Ratio       float64 `default:"0.5"`
	}
	ignored string
}

func TestBind(t *testing.T) {
	var cfg testConfig
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &cfg, Root("/data"))

	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, "/data/sqlite.db", cfg.Dsn)
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, time.Hour, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Hosts)
	assert.Equal(t, 0.5, cfg.Nested.Ratio)

	require.NotNil(t, flags.Lookup("max-size"))
	require.NotNil(t, flags.Lookup("nested.access-key-id"))
	assert.Nil(t, flags.Lookup("ignored"))

	secret := flags.Lookup("secret")
	require.NotNil(t, secret)
	assert.True(t, secret.Hidden)
	assert.Contains(t, secret.Annotations, InternalAnnotation)

	require.NoError(t, flags.Parse([]string{"--driver=mysql", "--nested.access-key-id=k", "--timeout=5s"}))
	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, "k", cfg.Nested.AccessKeyID)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

type Shared struct {
	Driver string `default:"local"`
}

func TestBindEmbedded(t *testing.T) {
	var cfg struct {
		Shared
		Extra int `default:"3"`
	}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Bind(flags, &cfg)
	require.NotNil(t, flags.Lookup("driver"))
	assert.Equal(t, "local", cfg.Driver)
	assert.Equal(t, 3, cfg.Extra)
}

func TestBindReleaseDefaults(t *testing.T) {
	var cfg testConfig
	Bind(pflag.NewFlagSet("test", pflag.ContinueOnError), &cfg, UseReleaseDefaults())
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "$ROOT/sqlite.db", cfg.Dsn)
}

func TestBindRejectsNonPointer(t *testing.T) {
	assert.Panics(t, func() {
		Bind(pflag.NewFlagSet("test", pflag.ContinueOnError), testConfig{})
	})
}

func TestHyphenate(t *testing.T) {
	tests := map[string]string{
		"Driver":          "driver",
		"MaxIdleConn":     "max-idle-conn",
		"ConnMaxLifetime": "conn-max-lifetime",
		"AccessKeyID":     "access-key-id",
		"S3":              "s3",
		"URLPrefix":       "url-prefix",
	}
	for in, want := range tests {
		assert.Equal(t, want, hyphenate(in), in)
	}
}
