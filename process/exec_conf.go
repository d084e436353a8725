package process

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"github.com/zeebo/structs"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/opdss/addressbook/cfgstruct"
)

// DefaultCfgFilename is the name of the config file inside --config-dir.
const DefaultCfgFilename = "config.yaml"

// DefaultEnvPrefix is used when ENV_PREFIX is not set.
const DefaultEnvPrefix = "addressbook"

// Error is the class of configuration errors raised before a command runs.
var Error = errs.Class("process")

var (
	commandMtx sync.Mutex
	contexts   = map[*cobra.Command]context.Context{}
	configs    = map[*cobra.Command][]interface{}{}

	processConfig struct {
		Log LogConfig
	}
)

// Options tune Exec.
type Options struct {
	// FailOnValueError aborts the command when a config value cannot be parsed
	// instead of logging it and keeping the flag default.
	FailOnValueError bool
	BindOpts         []cfgstruct.BindOpt
}

// Bind sets flags on a command that match the configuration struct
// 'config'. The config file and environment are decoded into it right
// before the command runs.
func Bind(cmd *cobra.Command, config interface{}, opts ...cfgstruct.BindOpt) {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	cfgstruct.Bind(cmd.Flags(), config, opts...)
	configs[cmd] = append(configs[cmd], config)
}

// Exec runs the command tree rooted at cmd and exits non-zero when the
// selected command fails.
func Exec(cmd *cobra.Command, opts Options) {
	if err := prepare(cmd, opts).Execute(); err != nil {
		os.Exit(1)
	}
}

// Ctx returns the context of the running command. It is cancelled on
// SIGINT or SIGTERM.
func Ctx(cmd *cobra.Command) context.Context {
	commandMtx.Lock()
	defer commandMtx.Unlock()

	if ctx := contexts[cmd]; ctx != nil {
		return ctx
	}
	return context.Background()
}

func prepare(cmd *cobra.Command, opts Options) *cobra.Command {
	cmd.SilenceUsage = true
	cfgstruct.Bind(cmd.PersistentFlags(), &processConfig, opts.BindOpts...)
	wrap(cmd, opts)
	return cmd
}

// wrap replaces the RunE of cmd and its subcommands with one that loads
// configuration, installs the process logger and the signal context.
func wrap(cmd *cobra.Command, opts Options) {
	for _, sub := range cmd.Commands() {
		wrap(sub, opts)
	}
	if cmd.Run != nil {
		panic("use RunE instead of Run for " + cmd.Name())
	}
	run := cmd.RunE
	if run == nil {
		return
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		vip, err := newViper(cmd)
		if err != nil {
			return err
		}
		unknown, broken := applyConfig(cmd, vip)

		logger, err := NewLogger(processConfig.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer zap.ReplaceGlobals(logger)()
		defer zap.RedirectStdLog(logger)()

		if used := vip.ConfigFileUsed(); used != "" {
			logger.Debug("configuration loaded", zap.String("location", used))
		}
		for _, key := range unknown {
			logger.Debug("unused configuration key", zap.String("key", key))
		}
		for _, key := range broken {
			if opts.FailOnValueError {
				return Error.New("invalid configuration value for key %s", key)
			}
			logger.Warn("invalid configuration value", zap.String("key", key))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		stopNotice := context.AfterFunc(ctx, func() {
			logger.Info("shutdown signal received", zap.String("command", cmd.Name()))
		})
		defer stopNotice()

		commandMtx.Lock()
		contexts[cmd] = ctx
		commandMtx.Unlock()
		defer func() {
			commandMtx.Lock()
			delete(contexts, cmd)
			commandMtx.Unlock()
		}()

		if err = run(cmd, args); err != nil {
			logger.Debug("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		}
		return err
	}
}

// newViper layers ADDRESSBOOK_* environment variables and the config file
// under --config-dir over the flags of cmd.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return nil, Error.Wrap(err)
	}

	prefix := os.Getenv("ENV_PREFIX")
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	vip.SetEnvPrefix(prefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	path, err := ConfigPath(cmd)
	if err != nil || !fileExists(path) {
		return vip, nil
	}
	vip.SetConfigFile(path)
	// setup may be rewriting a broken file
	if err := vip.ReadInConfig(); err != nil && cmd.Annotations["type"] != "setup" {
		return nil, Error.Wrap(err)
	}
	return vip, nil
}

// applyConfig decodes the settings into every struct bound to cmd. Keys the
// decoder cannot place are pushed into the flag of the same name. It returns
// the keys matching no flag and the keys whose value did not parse, sorted.
func applyConfig(cmd *cobra.Command, vip *viper.Viper) (unknown, broken []string) {
	commandMtx.Lock()
	targets := append([]interface{}{&processConfig}, configs[cmd]...)
	commandMtx.Unlock()

	settings := vip.AllSettings()
	used := map[string]struct{}{}
	missing := map[string]struct{}{}
	bad := map[string]struct{}{}
	for _, target := range targets {
		res := structs.Decode(settings, target)
		for key := range res.Used {
			used[key] = struct{}{}
		}
		for key := range res.Missing {
			missing[key] = struct{}{}
		}
		for key := range res.Broken {
			bad[key] = struct{}{}
		}
	}

	for key := range missing {
		if _, ok := used[key]; ok {
			continue
		}
		f := cmd.Flags().Lookup(key)
		if f == nil {
			unknown = append(unknown, key)
			continue
		}
		val := vip.GetString(key)
		if err := f.Value.Set(val); err != nil {
			bad[key] = struct{}{}
			continue
		}
		f.Changed = val != f.DefValue
	}

	broken = maps.Keys(bad)
	sort.Strings(unknown)
	sort.Strings(broken)
	return unknown, broken
}
