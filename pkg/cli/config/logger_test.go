package config_test

import (
	"testing"

	"github.com/jasonopslevel/opslevel-plugin-jenkins/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		json    bool
		wantErr bool
	}{
		{
			name:  "Valid level: debug",
			level: "debug",
		},
		{
			name:  "Valid level: DEBUG (case insensitive)",
			level: "DEBUG",
		},
		{
			name:  "Valid level: info",
			level: "info",
		},
		{
			name:  "Valid level: warn",
			level: "warn",
		},
		{
			name:  "Valid level: Error (mixed case)",
			level: "Error",
		},
		{
			name:  "JSON handler",
			level: "info",
			json:  true,
		},
		{
			name:    "Invalid level: verbose",
			level:   "verbose",
			wantErr: true,
		},
		{
			name:    "Invalid level: empty string",
			level:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level: tt.level,
				JSON:  tt.json,
			}

			result, err := logger.Configure()
			if (err != nil) != tt.wantErr {
				t.Errorf("Configure() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if result == nil {
				t.Fatal("Configure() returned nil logger for valid input")
			}

			// Verify the logger accepts records at every level
			result.Debug("debug message")
			result.Info("info message")
			result.Warn("warn message")
			result.Error("error message")
		})
	}
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	if len(flags) != 2 {
		t.Errorf("Flags() returned %d flags, want 2", len(flags))
	}

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		switch f := flag.(type) {
		case interface{ Names() []string }:
			names := f.Names()
			if len(names) > 0 {
				flagNames[names[0]] = true
			}
		}
	}

	if !flagNames["log-level"] {
		t.Error("Missing log-level flag")
	}
	if !flagNames["log-json"] {
		t.Error("Missing log-json flag")
	}
}
