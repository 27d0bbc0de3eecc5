package configvalidator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnknownField returns when an unknown field appears in the config.
var ErrUnknownField = errors.New("unknown field")

// CheckForUnknownFields validates the config struct for unknown fields
// with the raw settings map: every key of the map must correspond to a
// field of the struct, recursively for nested sections.
func CheckForUnknownFields(configMap map[string]any, config any) error {
	return checkSection(configMap, reflect.ValueOf(config), "")
}

func checkSection(configMap map[string]any, section reflect.Value, currentPath string) error {
	fields := fieldsByTag(section.Type())

	for key, val := range configMap {
		fullPath := key
		if currentPath != "" {
			fullPath = currentPath + "." + key
		}

		index, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, fullPath)
		}

		field := section.Field(index)

		nested, isMap := val.(map[string]any)
		if isMap != (field.Kind() == reflect.Struct) {
			return fmt.Errorf("%w: %s", ErrUnknownField, fullPath)
		}

		if isMap {
			if err := checkSection(nested, field, fullPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// fieldsByTag maps mapstructure tags of the struct fields to their
// indices. Untagged fields are mapped by the lowercased field name the
// way the decoder matches them.
func fieldsByTag(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(t.Field(i).Name)
		}

		fields[tag] = i
	}

	return fields
}
