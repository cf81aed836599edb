package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ollama/typedmap/logutil"
)

const (
	PutReturnsPrevious = "previous"
	PutReturnsStored   = "stored"
)

// Var returns an environment variable stripped of leading and trailing quotes
// and spaces, falling back to the config file when it is unset.
func Var(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.Trim(strings.TrimSpace(v), "\"'")
	}
	return GetConfigValue(key)
}

// Debug enables debug logging. Set via TYPEDMAP_DEBUG in the environment.
func Debug() bool {
	return LogLevel() <= slog.LevelDebug
}

// LogLevel returns the log level for the application.
// Values are 0 or false INFO (Default), 1 or true DEBUG, 2 TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("TYPEDMAP_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			if b {
				level = slog.LevelDebug
			}
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			level = slog.Level(i * -4)
		} else {
			level = slog.LevelDebug
		}
	}

	if level < logutil.LevelTrace {
		level = logutil.LevelTrace
	}
	return level
}

// PutReturns selects what Put reports back: the value it replaced or the value
// it stored. Set via TYPEDMAP_PUT_RETURNS in the environment.
func PutReturns() string {
	switch s := strings.ToLower(Var("TYPEDMAP_PUT_RETURNS")); s {
	case "", PutReturnsPrevious:
		return PutReturnsPrevious
	case PutReturnsStored:
		return PutReturnsStored
	default:
		slog.Warn("invalid setting, ignoring", "TYPEDMAP_PUT_RETURNS", s)
		return PutReturnsPrevious
	}
}

// ValueType is the default value kind for the CLI. Set via
// TYPEDMAP_VALUE_TYPE in the environment.
func ValueType() string {
	if s := strings.ToLower(Var("TYPEDMAP_VALUE_TYPE")); s != "" {
		return s
	}
	return "any"
}

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"TYPEDMAP_DEBUG":       {"TYPEDMAP_DEBUG", LogLevel(), "Show additional debug information (e.g. TYPEDMAP_DEBUG=1, 2 for trace)"},
		"TYPEDMAP_PUT_RETURNS": {"TYPEDMAP_PUT_RETURNS", PutReturns(), "Value reported by put: \"previous\" (default) or \"stored\""},
		"TYPEDMAP_VALUE_TYPE":  {"TYPEDMAP_VALUE_TYPE", ValueType(), "Default value type for show (string, number, bool, object, array, any)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
