package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single origin",
			input: "http://localhost:5173",
			want:  []string{"http://localhost:5173"},
		},
		{
			name:  "multiple with spaces",
			input: "http://localhost:5173, https://app.example.com",
			want:  []string{"http://localhost:5173", "https://app.example.com"},
		},
		{
			name:  "subdomain suffix entry",
			input: ".onrender.com",
			want:  []string{".onrender.com"},
		},
		{
			name:  "empty entries dropped",
			input: "http://localhost:5173,,  ,",
			want:  []string{"http://localhost:5173"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.input))
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "production"}).IsProduction())
	assert.False(t, (&Config{Environment: "development"}).IsProduction())
	assert.False(t, (&Config{}).IsProduction())
}
