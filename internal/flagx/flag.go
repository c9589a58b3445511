// Package flagx pre-parses a handful of flags before the main FlagSet runs,
// so the config loader can read files named on the command line first.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-c file" and "-c=file" forms are recognised; a following
// token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := names[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		if _, keep := names[arg]; !keep {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// StringFlag returns the last value given to any of the aliases in args, or
// "" when none is present. Aliases are flag names without the leading dash.
func StringFlag(args []string, aliases ...string) string {
	allowed := make([]string, 0, len(aliases)*2)
	for _, a := range aliases {
		allowed = append(allowed, "-"+a, "--"+a)
	}

	var v string
	fs := flag.NewFlagSet("pre", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, a := range aliases {
		fs.StringVar(&v, a, "", "")
	}
	_ = fs.Parse(FilterArgs(args, allowed))

	return v
}

// JSONConfigPath returns the path given with -c or -config.
func JSONConfigPath(args []string) string {
	return StringFlag(args, "c", "config")
}

// EnvFilePath returns the path given with -env-file.
func EnvFilePath(args []string) string {
	return StringFlag(args, "env-file")
}
