package options

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/signalbackup/backupdir/internal/errors"
)

// Options holds extended options in the form key=value, as passed with `-o`.
type Options map[string]string

var registered []Help

// Register makes the options of cfg (fields tagged with `option`) known under
// the namespace ns, so that they can be listed with List.
func Register(ns string, cfg interface{}) {
	for _, h := range listOptions(cfg) {
		h.Namespace = ns
		registered = append(registered, h)
	}

	sort.Slice(registered, func(i, j int) bool {
		if registered[i].Namespace == registered[j].Namespace {
			return registered[i].Name < registered[j].Name
		}
		return registered[i].Namespace < registered[j].Namespace
	})
}

// List returns all registered options.
func List() []Help {
	list := make([]Help, len(registered))
	copy(list, registered)
	return list
}

func listOptions(cfg interface{}) (opts []Help) {
	v := reflect.Indirect(reflect.ValueOf(cfg))

	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)

		name := f.Tag.Get("option")
		if name == "" {
			continue
		}

		opts = append(opts, Help{Name: name, Text: f.Tag.Get("help")})
	}

	return opts
}

// Help contains information about an option.
type Help struct {
	Namespace string
	Name      string
	Text      string
}

// Parse takes a slice of key=value pairs and returns an Options type.
// The key may include namespaces, separated by dots. Example: "host.level=29".
// Keys are converted to lower-case.
func Parse(in []string) (Options, error) {
	opts := make(Options, len(in))

	for _, opt := range in {
		key, value, _ := strings.Cut(opt, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if key == "" {
			return Options{}, errors.Fatalf("empty key is not a valid option")
		}

		if v, ok := opts[key]; ok && v != value {
			return Options{}, errors.Fatalf("key %q present more than once", key)
		}

		opts[key] = value
	}

	return opts, nil
}

// Extract returns an Options type with all keys in namespace ns, which is
// also stripped from the keys.
func (o Options) Extract(ns string) Options {
	if !strings.HasSuffix(ns, ".") {
		ns += "."
	}

	opts := make(Options)
	for k, v := range o {
		if rest, ok := strings.CutPrefix(k, ns); ok {
			opts[rest] = v
		}
	}

	return opts
}

// Apply sets the options on dst via reflection, using the struct tag `option`.
// The namespace argument (ns) is only used for error messages.
func (o Options) Apply(ns string, dst interface{}) error {
	v := reflect.ValueOf(dst).Elem()

	fields := make(map[string]int)
	for i := 0; i < v.NumField(); i++ {
		tag := v.Type().Field(i).Tag.Get("option")
		if tag == "" {
			continue
		}

		if _, ok := fields[tag]; ok {
			panic("option tag " + tag + " is not unique in " + v.Type().Name())
		}
		fields[tag] = i
	}

	for key, value := range o {
		i, ok := fields[key]
		if !ok {
			if ns != "" {
				key = ns + "." + key
			}
			return errors.Fatalf("option %v is not known", key)
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)

		case reflect.Int:
			vi, err := strconv.ParseInt(value, 0, 32)
			if err != nil {
				return errors.Fatalf("invalid value %q for option %v: %v", value, key, err)
			}
			field.SetInt(vi)

		case reflect.Bool:
			vb, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Fatalf("invalid value %q for option %v: %v", value, key, err)
			}
			field.SetBool(vb)

		default:
			panic("type " + field.Type().Name() + " not handled")
		}
	}

	return nil
}
