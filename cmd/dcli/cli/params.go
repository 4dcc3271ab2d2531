// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagsFromParams returns a FlagSet bound to the tagged fields of
// params, which must be a pointer to a struct. A params type that
// cannot be bound is a programming error and panics.
//
//	var params compileParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("compile", &params)
//	    },
//	    Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
//	        // params holds the parsed flag values here
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers one flag per tagged field of params.
//
// flag:"name" or flag:"name,n" names the flag and its optional
// shorthand; fields without the tag are skipped. desc:"..." is the help
// text and default:"..." the initial value, written as it would be
// typed on the command line.
//
// Field types are string, bool, int, []string (comma separated), and
// any type whose pointer implements [pflag.Value], such as
// [frontend.Kind] and [schemafile.Compression]. A pflag.Value field
// without a default tag keeps the value it holds when BindFlags runs,
// so a command can seed it from configuration first.
//
// Fields promoted from embedded structs, such as [JSONOutput], are
// bound like the struct's own.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	structValue := value.Elem()

	for _, field := range reflect.VisibleFields(structValue.Type()) {
		tag, ok := field.Tag.Lookup("flag")
		if !ok || field.Anonymous {
			continue
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		target := structValue.FieldByIndex(field.Index).Addr().Interface()
		if err := bindField(flagSet, target, name, shorthand, field.Tag); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(flagSet *pflag.FlagSet, target any, name, shorthand string, tag reflect.StructTag) error {
	description := tag.Get("desc")
	initial, hasDefault := tag.Lookup("default")

	switch target := target.(type) {
	case pflag.Value:
		if hasDefault {
			if err := target.Set(initial); err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
		}
		flagSet.VarP(target, name, shorthand, description)

	case *string:
		flagSet.StringVarP(target, name, shorthand, initial, description)

	case *bool:
		value, err := parseDefault(initial, strconv.ParseBool)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.BoolVarP(target, name, shorthand, value, description)

	case *int:
		value, err := parseDefault(initial, strconv.Atoi)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.IntVarP(target, name, shorthand, value, description)

	case *[]string:
		var value []string
		if initial != "" {
			value = strings.Split(initial, ",")
		}
		flagSet.StringSliceVarP(target, name, shorthand, value, description)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", reflect.TypeOf(target).Elem(), name)
	}
	return nil
}

// parseDefault parses a default tag, treating an empty tag as the zero
// value.
func parseDefault[T any](text string, parse func(string) (T, error)) (T, error) {
	if text == "" {
		var zero T
		return zero, nil
	}
	return parse(text)
}
