// Package config provides configuration types for the action bridge.
package config
