// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argbind

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// NewOptionSet returns a FlagSet holding the node's option (non
// positional) declarations, with declared defaults and enum choices in
// the usage text. The help formatter renders it with FlagUsages.
func NewOptionSet(node *clischema.Node) *pflag.FlagSet {
	return newFlagSet(node, false)
}

// newFlagSet registers the positional or the option declarations of
// node. Positionals get a FlagSet of their own so the same typed
// storage and parsing applies to both kinds.
func newFlagSet(node *clischema.Node, positional bool) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(strings.Join(node.Path(), " "), pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SortFlags = false

	for _, arg := range node.Args() {
		if arg.Positional() != positional {
			continue
		}
		register(flagSet, arg)
	}
	return flagSet
}

func register(flagSet *pflag.FlagSet, arg *clischema.Arg) {
	usage := arg.Help()
	if enum := arg.Enum(); len(enum) > 0 {
		usage += " (choices: " + strings.Join(enum, ", ") + ")"
	}
	value, _ := arg.Default()

	switch arg.Type() {
	case clischema.Integer:
		defaultValue, _ := value.(int64)
		flagSet.Var(newInt64Value(defaultValue), arg.Name(), usage)
	case clischema.Float:
		defaultValue, _ := value.(float64)
		flagSet.Float64(arg.Name(), defaultValue, usage)
	case clischema.String:
		defaultValue, _ := value.(string)
		flagSet.String(arg.Name(), defaultValue, usage)
	case clischema.Flag:
		defaultValue, _ := value.(bool)
		flagSet.Bool(arg.Name(), defaultValue, usage)
	case clischema.Text:
		defaultValue, _ := value.([]string)
		flagSet.StringArray(arg.Name(), defaultValue, usage)
	}
}

// typedValue reads the current value of arg out of flagSet with the Go
// type that matches its declaration.
func typedValue(flagSet *pflag.FlagSet, arg *clischema.Arg) any {
	name := arg.Name()
	switch arg.Type() {
	case clischema.Integer:
		value, _ := flagSet.Lookup(name).Value.(*int64Value)
		if value == nil {
			return int64(0)
		}
		return int64(*value)
	case clischema.Float:
		value, _ := flagSet.GetFloat64(name)
		return value
	case clischema.String:
		value, _ := flagSet.GetString(name)
		return value
	case clischema.Flag:
		value, _ := flagSet.GetBool(name)
		return value
	case clischema.Text:
		value, _ := flagSet.GetStringArray(name)
		return value
	default:
		return nil
	}
}

// int64Value parses decimal integers only. pflag's own Int64 accepts
// Go literal syntax (0x10, 010, 1_0), which would make a token and a
// schema default of the same text bind different numbers.
type int64Value int64

func newInt64Value(value int64) *int64Value {
	v := int64Value(value)
	return &v
}

func (v *int64Value) Set(text string) error {
	parsed, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return err
	}
	*v = int64Value(parsed)
	return nil
}

func (v *int64Value) String() string { return strconv.FormatInt(int64(*v), 10) }

func (v *int64Value) Type() string { return "int64" }
