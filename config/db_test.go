package config

import (
	"testing"
)

func TestDBConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    DBConfig
		expected DBConfig
	}{
		{
			name:  "Empty config",
			input: DBConfig{},
			expected: DBConfig{
				Path: "/home/user/.offerhub/journal",
			},
		},
		{
			name: "Config with custom path",
			input: DBConfig{
				Path: "/custom/path/journal",
			},
			expected: DBConfig{
				Path: "/custom/path/journal",
			},
		},
		{
			name: "Disabled journal keeps its path",
			input: DBConfig{
				Disabled: true,
			},
			expected: DBConfig{
				Path:     "/home/user/.offerhub/journal",
				Disabled: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.WithDefaults("/home/user/.offerhub")
			if result != tt.expected {
				t.Errorf("WithDefaults() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}
