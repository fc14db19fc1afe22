package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName     = "toggle"
	toggleFlagTrueLiteral  = "true"
	toggleFlagAcceptedList = "true, false, yes, no, on, off, 1, 0"
	errorToggleValueFormat = "invalid value %q for --%s; accepted values: %s"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// toggleFlag is a boolean flag that also accepts yes/no style literals.
type toggleFlag struct {
	target *bool
	name   string
}

func (flag *toggleFlag) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, known := toggleLiterals[normalized]
	if !known {
		return fmt.Errorf(errorToggleValueFormat, input, flag.name, toggleFlagAcceptedList)
	}
	*flag.target = parsed
	return nil
}

func (flag *toggleFlag) String() string {
	if flag == nil || flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagTypeName
}

func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&toggleFlag{target: target, name: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(false)
	registered.NoOptDefVal = toggleFlagTrueLiteral
}

// expandToggleArguments rewrites "--flag value" into "--flag=value" for toggle flags
// when value is a recognised literal, since pflag never consumes a separate value
// for flags with a no-option default. A value naming an existing path stays
// positional, so "--clipboard y" still ingests a directory called y.
func expandToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}

	expanded := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			expanded = append(expanded, arguments[index:]...)
			break
		}
		flagName, isLongFlag := strings.CutPrefix(argument, "--")
		if isLongFlag && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			if _, isToggle := toggleNames[flagName]; isToggle {
				literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
				if _, known := toggleLiterals[literal]; known && !pathExists(arguments[index+1]) {
					expanded = append(expanded, fmt.Sprintf("--%s=%s", flagName, arguments[index+1]))
					index++
					continue
				}
			}
		}
		expanded = append(expanded, argument)
	}
	return expanded
}

func pathExists(candidate string) bool {
	_, statError := os.Stat(candidate)
	return statError == nil
}

func collectToggleNames(command *cobra.Command, names map[string]struct{}) {
	collect := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag.Value.Type() == toggleFlagTypeName {
				names[flag.Name] = struct{}{}
			}
		})
	}
	collect(command.PersistentFlags())
	collect(command.Flags())
	for _, child := range command.Commands() {
		collectToggleNames(child, names)
	}
}
