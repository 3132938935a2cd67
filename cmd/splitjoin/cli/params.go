// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by flag groups that register their own
// flags, such as the --config/--log-level pair every splitjoin command
// shares. [BindFlags] calls AddFlags for any struct field whose pointer
// implements it.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a flag set named name with flags bound to the
// tagged fields of params, a pointer to a struct. Invalid params are a
// programming error and panic.
//
//	var params chunkParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("chunk", &params) },
//	    Run:   func(args []string) error { ... params is populated here ... },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for each tagged field of
// params, which must be a pointer to a struct.
//
// A field tagged flag:"name" or flag:"name,n" becomes --name (with
// shorthand -n); desc:"..." is its help text. Field types are string,
// bool, int, and any type whose pointer implements [pflag.Value], which
// is how sizes and pipeline names parse themselves. Flags start at the
// zero value: commands fall back to configuration for anything unset.
//
// Exported struct fields implementing [FlagBinder] add their own flags.
// Untagged embedded structs such as [JSONOutput] are walked for tags.
// Unexported fields are ignored.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		target := structValue.Field(i).Addr().Interface()

		if binder, ok := target.(FlagBinder); ok {
			binder.AddFlags(flagSet)
			continue
		}

		tag, tagged := field.Tag.Lookup("flag")
		if !tagged {
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				if err := bindStruct(structValue.Field(i), flagSet); err != nil {
					return fmt.Errorf("embedded %s: %w", field.Name, err)
				}
			}
			continue
		}

		name, shorthand, _ := strings.Cut(tag, ",")
		usage := field.Tag.Get("desc")
		switch target := target.(type) {
		case pflag.Value:
			flagSet.VarP(target, name, shorthand, usage)
		case *string:
			flagSet.StringVarP(target, name, shorthand, "", usage)
		case *bool:
			flagSet.BoolVarP(target, name, shorthand, false, usage)
		case *int:
			flagSet.IntVarP(target, name, shorthand, 0, usage)
		default:
			return fmt.Errorf("field %s: type %s cannot back --%s", field.Name, field.Type, name)
		}
	}
	return nil
}
