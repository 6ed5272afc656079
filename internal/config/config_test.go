package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "./test.db",
				DisplayLang:  "en",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				SQLiteDBPath: "./test.db",
				DisplayLang:  "en",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:         "70000",
				SQLiteDBPath: "./test.db",
				DisplayLang:  "en",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty db path",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "",
				DisplayLang:  "en",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "invalid display language",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "./test.db",
				DisplayLang:  "it",
			},
			wantErr:     true,
			errorString: "invalid display language 'it'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/expenses.db" {
		t.Fatalf("unexpected default db path: %s", cfg.SQLiteDBPath)
	}
	if cfg.DisplayLang != "en" {
		t.Fatalf("unexpected default lang: %s", cfg.DisplayLang)
	}
}
