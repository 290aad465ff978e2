package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https link", "https://example.com/nota.pdf", true},
		{"http link", "http://example.com", true},
		{"empty counts as absent", "", true},
		{"missing scheme", "example.com/nota.pdf", false},
		{"bare text", "not-a-url", false},
		{"unsupported scheme", "ftp://example.com/file", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}

func TestIsValidYear(t *testing.T) {
	nextYear := time.Now().Year() + 1

	assert.True(t, IsValidYear(2020))
	assert.True(t, IsValidYear(nextYear))
	assert.False(t, IsValidYear(nextYear+1))
	assert.False(t, IsValidYear(1899))
}
