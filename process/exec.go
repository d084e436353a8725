package process

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
)

func init() {
	cobra.MousetrapHelpText = "addressbook is a command line tool.\n\n" +
		"It needs to be run from a Command Prompt.\n"

	// Figure out the executable name.
	exe, err := os.Executable()
	if err == nil {
		cobra.MousetrapHelpText += fmt.Sprintf(
			"Try running \"%s help\" for more information\n", exe)
	}
}

// ConfigPath returns the config file location selected by the "config-dir" flag.
func ConfigPath(cmd *cobra.Command) (string, error) {
	cfgFlag := cmd.Flags().Lookup("config-dir")
	if cfgFlag == nil || cfgFlag.Value.String() == "" {
		return "", errs.New("command %q has no config-dir", cmd.Name())
	}
	return filepath.Join(os.ExpandEnv(cfgFlag.Value.String()), DefaultCfgFilename), nil
}

// fileExists checks whether file exists, handle error correctly if it doesn't.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		log.Fatalf("failed to check for file existence: %v", err)
	}
	return true
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	return fileExists(path)
}

// atomicWriteFile writes data next to outfile and renames it into place.
func atomicWriteFile(outfile string, data []byte, mode os.FileMode) (err error) {
	if err = os.MkdirAll(filepath.Dir(outfile), 0700); err != nil {
		return errs.Wrap(err)
	}
	fh, err := os.CreateTemp(filepath.Dir(outfile), filepath.Base(outfile))
	if err != nil {
		return errs.Wrap(err)
	}
	needsClose, needsRemove := true, true

	defer func() {
		if needsClose {
			err = errs.Combine(err, errs.Wrap(fh.Close()))
		}
		if needsRemove {
			err = errs.Combine(err, errs.Wrap(os.Remove(fh.Name())))
		}
	}()

	if _, err := fh.Write(data); err != nil {
		return errs.Wrap(err)
	}
	if err := fh.Chmod(mode); err != nil {
		return errs.Wrap(err)
	}

	needsClose = false
	if err := fh.Close(); err != nil {
		return errs.Wrap(err)
	}

	if err := os.Rename(fh.Name(), outfile); err != nil {
		return errs.Wrap(err)
	}
	needsRemove = false

	return nil
}
