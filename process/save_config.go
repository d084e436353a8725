package process

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
	"gopkg.in/yaml.v2"

	"github.com/opdss/addressbook/cfgstruct"
)

// SaveConfig writes the current values of every config flag of cmd to
// outfile as nested yaml. Internal flags and the config-dir flag are skipped.
func SaveConfig(cmd *cobra.Command, outfile string, overrides map[string]interface{}) error {
	values := map[string]interface{}{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config-dir" || f.Name == "help" {
			return
		}
		if _, ok := f.Annotations[cfgstruct.InternalAnnotation]; ok {
			return
		}
		setNested(values, f.Name, flagValue(f))
	})
	for key, value := range overrides {
		setNested(values, key, value)
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return errs.Wrap(err)
	}
	return atomicWriteFile(outfile, data, 0600)
}

func flagValue(f *pflag.Flag) interface{} {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return sv.GetSlice()
	}
	s := f.Value.String()
	switch f.Value.Type() {
	case "bool":
		return cast.ToBool(s)
	case "int", "int64", "uint":
		return cast.ToInt64(s)
	case "float64":
		return cast.ToFloat64(s)
	default:
		return s
	}
}

func setNested(values map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, ".")
	m := values
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
