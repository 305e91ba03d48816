// Package config loads crystalview options from defaults, an optional
// YAML file under the XDG config directory and the environment, in that
// order.
package config
