package cmd

import (
	"strings"

	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/spf13/pflag"
)

// flagAliases maps alternate long flag names onto the canonical ones.
var flagAliases = map[string]string{
	"master":        models.KeyMasterMachineType,
	"worker":        models.KeyWorkerMachineType,
	"n-workers":     models.KeyNumWorkers,
	"n-pre-workers": models.KeyNumPreemptibleWorkers,
}

// legacyShortFlags are multi-letter single-dash aliases. pflag only knows
// single-letter shorthands, so these are rewritten before parsing.
var legacyShortFlags = map[string]string{
	"-np": models.KeyNumPreemptibleWorkers,
	"-nw": models.KeyNumWorkers,
}

func normalizeFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		return pflag.NormalizedName(canonical)
	}
	return pflag.NormalizedName(name)
}

// NormalizeLegacyArgs rewrites -np and -nw, with a separate or an inline
// value, to their long forms. Arguments after "--" are left alone.
func NormalizeLegacyArgs(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(normalized, args[i:]...)
		}

		name, value, hasValue := strings.Cut(arg, "=")
		canonical, ok := legacyShortFlags[name]
		if !ok {
			normalized = append(normalized, arg)
			continue
		}
		if hasValue {
			normalized = append(normalized, "--"+canonical+"="+value)
		} else {
			normalized = append(normalized, "--"+canonical)
		}
	}
	return normalized
}
