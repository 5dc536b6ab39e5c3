package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/podfetch/podfetch/color"
	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered setting. Value holds the default and fixes the type.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the type of the default value.
func (f *Field) Type() string {
	return fmt.Sprintf("%T", f.Value)
}

// Parse converts command line arguments to a value of the field's type.
// Only list fields accept more than one argument.
func (f *Field) Parse(args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s needs a value", f.Key)
	}

	switch f.Value.(type) {
	case []string:
		return args, nil
	case string:
		return args[0], nil
	case int:
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, args[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", f.Key, args[0])
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%s has unsupported type %s", f.Key, f.Type())
	}
}

// Pretty renders the field with its current value for config info.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
		Env:         f.Env(),
	})
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(value, color.Green, color.Red))(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"purple": style.Fg(color.Purple),
	"blue":   style.Fg(color.Blue),
	"value":  viper.Get,
	"hl":     highlight,
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl .Value }}
{{ blue "Type:" }}    {{ .Type }}`))
