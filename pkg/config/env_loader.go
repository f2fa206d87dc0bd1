/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/lantime-exporter/pkg/logger"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
	errUnsupportedFieldType     = errors.New("unsupported field type")
)

// EnvConfigLoader loads configuration from environment variables named after the
// json tags of dst, upper-cased and joined with underscores. For example
// LANTIME_PROMETHEUS_LOGGING_LEVEL maps to config.Logging.Level.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader. A complete JSON document in <prefix>CONFIG_JSON is
// applied first; individual variables are applied on top of it.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}
	}

	return e.loadStruct(v, e.prefix)
}

func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	var errs []error

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		name, _, _ := strings.Cut(jsonTag, ",")
		envName := prefix + strings.ToUpper(name)

		if err := e.setField(field, envName); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (e *EnvConfigLoader) setField(field reflect.Value, envName string) error {
	if isStruct(field.Type()) {
		return e.loadNested(field, envName+"_")
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok || envValue == "" {
		return nil
	}

	if err := setFieldByKind(field, envName, envValue); err != nil {
		return err
	}

	if e.logger != nil {
		e.logger.Debug().Str("env", envName).Msg("Loaded value from environment variable")
	}

	return nil
}

// loadNested descends into a struct field. Nil pointers are only allocated when at
// least one variable with the nested prefix is set.
func (e *EnvConfigLoader) loadNested(field reflect.Value, prefix string) error {
	if field.Kind() != reflect.Ptr {
		return e.loadStruct(field, prefix)
	}

	if field.IsNil() {
		if !hasEnvPrefix(prefix) {
			return nil
		}

		field.Set(reflect.New(field.Type().Elem()))
	}

	return e.loadStruct(field.Elem(), prefix)
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

func hasEnvPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

func setFieldByKind(field reflect.Value, envName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)

	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", envName, err)
		}

		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntField(field, envName, envValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(envValue, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer value for %s: %w", envName, err)
		}

		field.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", envName, err)
		}

		field.SetFloat(f)

	case reflect.Slice:
		return setSliceField(field, envName, envValue)

	case reflect.Map:
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("invalid map value for %s: %w", envName, err)
		}

	default:
		return fmt.Errorf("%w %s for %s", errUnsupportedFieldType, field.Kind(), envName)
	}

	return nil
}

// setIntField parses integers, and duration strings for any integer type whose name
// ends in Duration (time.Duration and the package level Duration wrappers).
func setIntField(field reflect.Value, envName, envValue string) error {
	if strings.HasSuffix(field.Type().Name(), "Duration") {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", envName, err)
		}

		field.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(envValue, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", envName, err)
	}

	field.SetInt(i)

	return nil
}

// setSliceField accepts a JSON array for any slice type. String slices may also be
// given as shell words, e.g. URLS="ntp01:https://a/ 'ntp 2:https://b/'".
func setSliceField(field reflect.Value, envName, envValue string) error {
	if strings.HasPrefix(strings.TrimSpace(envValue), "[") {
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("invalid slice value for %s: %w", envName, err)
		}

		return nil
	}

	if field.Type().Elem().Kind() != reflect.String {
		return fmt.Errorf("%w: %s expects a JSON array", errUnsupportedFieldType, envName)
	}

	words, err := SplitArgs(envValue)
	if err != nil {
		return fmt.Errorf("invalid list value for %s: %w", envName, err)
	}

	slice := reflect.MakeSlice(field.Type(), len(words), len(words))
	for i, w := range words {
		slice.Index(i).SetString(w)
	}

	field.Set(slice)

	return nil
}
