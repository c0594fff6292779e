package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// BindEnvs 以 "__" 串接 mapstructure tag 綁定環境變數；
// env tag 列出的扁平別名（例如 OPENAI_API_KEY）排在標準名稱之後
func BindEnvs(v *viper.Viper) {
	bindEnvs(v, reflect.TypeOf(Configuration{}))
}

func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	// 若遇到指標，取其 Elem
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(append([]string{}, path...), tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
			continue
		}
		key := strings.Join(newPath, "__")
		_ = v.BindEnv(append([]string{key, key}, envAliases(field)...)...)
	}
}

func envAliases(field reflect.StructField) []string {
	tag := field.Tag.Get("env")
	if tag == "" {
		return nil
	}
	var aliases []string
	for _, name := range strings.Split(tag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			aliases = append(aliases, name)
		}
	}
	return aliases
}
