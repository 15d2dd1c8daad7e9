// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeOf(time.Duration(0))

// readEnv populates the struct pointed to by target from the environment
// variables named in its `env:"NAME[,overwrite]"` field tags.
//
// Fields tagged without "overwrite" are only set while they hold their zero value.
// Untagged struct fields are descended into.
func readEnv(target any) error {
	structValue := reflect.ValueOf(target)
	if structValue.Kind() != reflect.Ptr {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			if field.Kind() == reflect.Struct && field.CanAddr() && fieldType.IsExported() {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		name, options, _ := strings.Cut(tag, ",")
		overwrite := slices.Contains(strings.Split(options, ","), "overwrite")

		envValue, exists := os.LookupEnv(name)
		if !exists || !field.CanSet() {
			continue
		}

		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, fieldType.Name, name, envValue); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue sets the field value based on its type.
func setFieldValue(field reflect.Value, fieldName, envVarName, envValue string) error {
	fail := func(kind string, err error) error {
		return fmt.Errorf("failed to parse %s for %s from env var %s (%s): %w",
			kind, fieldName, envVarName, envValue, err)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(envValue)
			if err != nil {
				return fail("duration", err)
			}

			field.SetInt(int64(d))

			return nil
		}

		n, err := strconv.ParseInt(strings.TrimSpace(envValue), 10, field.Type().Bits())
		if err != nil {
			return fail("int", err)
		}

		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(envValue))
		if err != nil {
			return fail("bool", err)
		}

		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w for field %s", errUnsupportedSliceType, fieldName)
		}

		values := make([]string, 0)

		for value := range strings.SplitSeq(envValue, ",") {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				values = append(values, trimmed)
			}
		}

		field.Set(reflect.ValueOf(values))
	default:
		return fmt.Errorf("%w for field %s: %s", errUnsupportedFieldType, fieldName, field.Kind())
	}

	return nil
}
