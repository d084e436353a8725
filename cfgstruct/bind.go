// Package cfgstruct binds configuration structs to command line flags.
//
// Every exported field of a struct becomes a flag named after the field
// path in hyphen-case, so Log.MaxSize becomes "log.max-size". Embedded
// structs are flattened into their parent. Field tags control the flag:
//
//	help            usage text
//	default         default value
//	releaseDefault  default value when UseReleaseDefaults is given
//	internal        "true" hides the flag and keeps it out of saved configs
package cfgstruct

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/pflag"
)

// InternalAnnotation marks flags that should not be written to config files.
const InternalAnnotation = "cfgstruct-internal"

// BindOpt is an option for the Bind method.
type BindOpt func(*bindOptions)

type bindOptions struct {
	release bool
	vars    map[string]string
}

// UseReleaseDefaults makes Bind prefer the releaseDefault tag.
func UseReleaseDefaults() BindOpt {
	return func(o *bindOptions) { o.release = true }
}

// ConfigVar registers a $NAME variable expanded inside default values.
func ConfigVar(name, value string) BindOpt {
	return func(o *bindOptions) { o.vars[name] = value }
}

// ConfDir sets $CONFDIR for default values.
func ConfDir(path string) BindOpt {
	return ConfigVar("CONFDIR", os.ExpandEnv(path))
}

// Root sets $ROOT for default values.
func Root(path string) BindOpt {
	return ConfigVar("ROOT", os.ExpandEnv(path))
}

// Bind sets flags on a FlagSet that match the configuration struct
// 'config'. config must be a pointer to a struct.
func Bind(flags *pflag.FlagSet, config interface{}, opts ...BindOpt) {
	o := &bindOptions{vars: map[string]string{}}
	for _, opt := range opts {
		opt(o)
	}
	ptr := reflect.ValueOf(config)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("invalid config type: %#v. Expecting pointer to struct.", config))
	}
	bindStruct(flags, "", ptr.Elem(), o)
}

func bindStruct(flags *pflag.FlagSet, prefix string, val reflect.Value, o *bindOptions) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			bindStruct(flags, prefix, fieldVal, o)
			continue
		}
		name := prefix + hyphenate(field.Name)

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Duration(0)) {
			bindStruct(flags, name+".", fieldVal, o)
			continue
		}

		help := field.Tag.Get("help")
		def := field.Tag.Get("default")
		if o.release {
			if rel, ok := field.Tag.Lookup("releaseDefault"); ok {
				def = rel
			}
		}
		def = o.expand(def)

		bindField(flags, name, help, def, fieldVal)
		if field.Tag.Get("internal") == "true" {
			_ = flags.MarkHidden(name)
			_ = flags.SetAnnotation(name, InternalAnnotation, []string{"true"})
		}
	}
}

func bindField(flags *pflag.FlagSet, name, help, def string, fieldVal reflect.Value) {
	switch ptr := fieldVal.Addr().Interface().(type) {
	case *string:
		flags.StringVar(ptr, name, def, help)
	case *bool:
		flags.BoolVar(ptr, name, mustParse(name, def, strconv.ParseBool), help)
	case *int:
		flags.IntVar(ptr, name, mustParse(name, def, strconv.Atoi), help)
	case *int64:
		flags.Int64Var(ptr, name, mustParse(name, def, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		}), help)
	case *uint:
		flags.UintVar(ptr, name, uint(mustParse(name, def, func(s string) (uint64, error) {
			return strconv.ParseUint(s, 10, 0)
		})), help)
	case *float64:
		flags.Float64Var(ptr, name, mustParse(name, def, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		}), help)
	case *time.Duration:
		flags.DurationVar(ptr, name, mustParse(name, def, time.ParseDuration), help)
	case *[]string:
		var values []string
		if def != "" {
			values = strings.Split(def, ",")
		}
		flags.StringSliceVar(ptr, name, values, help)
	default:
		panic(fmt.Sprintf("invalid field type: %s", fieldVal.Type()))
	}
}

func mustParse[T any](name, def string, parse func(string) (T, error)) T {
	var zero T
	if def == "" {
		return zero
	}
	v, err := parse(def)
	if err != nil {
		panic(fmt.Sprintf("invalid default value for %s: %q: %v", name, def, err))
	}
	return v
}

func (o *bindOptions) expand(def string) string {
	if !strings.Contains(def, "$") {
		return def
	}
	return os.Expand(def, func(key string) string {
		if v, ok := o.vars[key]; ok {
			return v
		}
		return "$" + key
	})
}

// hyphenate converts CamelCase to hyphen-case, keeping acronyms together:
// MaxIdleConn -> max-idle-conn, AccessKeyID -> access-key-id, S3 -> s3.
func hyphenate(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
