// Package config resolves dpctl's settings: the instrument address, channel
// count, and refresh interval. Settings come from a YAML file in the
// platform config directory (e.g. ~/.config/dpctl/config.yaml), optionally
// overridden by an explicit --config file and the --address flag.
package config
