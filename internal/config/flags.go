package config

import "github.com/urfave/cli/v3"

// JoinFlags combines multiple flag slices into one
func JoinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}
