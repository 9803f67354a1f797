package main

import (
	"fmt"
	"strings"

	"github.com/ossrs/go-oryx-lib/errors"
)

type ArgParameter interface {
	Names() []string
	ArgCount() int
	HelpMessage() string
	ValidateAndParse(usedName string, args []string) (interface{}, error)
	DefaultValue() interface{}
}

func NewArgs(defaultUsageExample string) Args {
	return Args{
		nil,
		defaultUsageExample,
		make(map[string]ArgParameter),
	}
}

type Args struct {
	args                []ArgParameter
	defaultUsageExample string
	flagNameToArg       map[string]ArgParameter
}

func (args *Args) addArg(arg ArgParameter) {
	args.args = append(args.args, arg)
	for _, name := range arg.Names() {
		args.flagNameToArg[name] = arg
	}
}

func (args *Args) AddStringArg(names []string, helpMessage string, defaultValue string) {
	args.addArg(&stringArg{names, helpMessage, defaultValue})
}

func (args *Args) AddFlagArg(names []string, helpMessage string) {
	args.addArg(&flagArg{names, helpMessage})
}

func (args *Args) CreateHelpMessage() string {
	var result = []string{args.defaultUsageExample}

	result = append(result, "")

	for _, arg := range args.args {
		result = append(result, fmt.Sprintf("    %s %s", strings.Join(arg.Names(), ", "), arg.HelpMessage()))
	}

	return strings.Join(result, "\n")
}

// Parse splits stringArgs into named values and positional arguments. Every
// named argument is present in the result, holding its default when absent.
func (args *Args) Parse(stringArgs []string) (map[string]interface{}, []string, []error) {
	var namedArgs = make(map[string]interface{})
	var listArguments []string = nil
	var errs []error = nil

	for index := 0; index < len(stringArgs); {
		var current = stringArgs[index]
		index++

		argParam, ok := args.flagNameToArg[current]

		if ok {
			var maxActualArgs = len(stringArgs) - index
			if maxActualArgs >= argParam.ArgCount() {
				value, err := argParam.ValidateAndParse(current, stringArgs[index:index+argParam.ArgCount()])

				if err != nil {
					errs = append(errs, err)
				} else {
					for _, name := range argParam.Names() {
						namedArgs[name] = value
					}
				}

				index += argParam.ArgCount()
			} else {
				errs = append(errs, errors.Errorf("%s expects %d args, got %d", current, argParam.ArgCount(), maxActualArgs))
			}
		} else if len(current) > 1 && current[0] == '-' {
			errs = append(errs, errors.Errorf("unknown parameter %s", current))
		} else {
			listArguments = append(listArguments, current)
		}
	}

	for name, arg := range args.flagNameToArg {
		if _, has := namedArgs[name]; !has {
			namedArgs[name] = arg.DefaultValue()
		}
	}

	return namedArgs, listArguments, errs
}

type stringArg struct {
	names        []string
	helpMessage  string
	defaultValue string
}

func (arg *stringArg) Names() []string {
	return arg.names
}

func (arg *stringArg) ArgCount() int {
	return 1
}

func (arg *stringArg) HelpMessage() string {
	return arg.helpMessage
}

func (arg *stringArg) ValidateAndParse(usedName string, args []string) (interface{}, error) {
	if args[0] == "" {
		return nil, errors.Errorf("%s expects a non-empty value", usedName)
	}

	return args[0], nil
}

func (arg *stringArg) DefaultValue() interface{} {
	return arg.defaultValue
}

type flagArg struct {
	names       []string
	helpMessage string
}

func (arg *flagArg) Names() []string {
	return arg.names
}

func (arg *flagArg) ArgCount() int {
	return 0
}

func (arg *flagArg) HelpMessage() string {
	return arg.helpMessage
}

func (arg *flagArg) ValidateAndParse(usedName string, args []string) (interface{}, error) {
	return true, nil
}

func (arg *flagArg) DefaultValue() interface{} {
	return false
}
