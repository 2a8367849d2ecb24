package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, true},
		{StatusContacted, true},
		{StatusClosed, true},
		{Status(""), false},
		{Status("archived"), false},
		{Status("New"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Valid(), "status %q", tt.status)
	}
}

func TestNormalizeService(t *testing.T) {
	assert.Equal(t, "", NormalizeService(""))
	assert.Equal(t, "TikTok Marketing", NormalizeService("TikTok Marketing"))
	assert.Equal(t, "Other", NormalizeService("Skywriting"))
	assert.Equal(t, "Other", NormalizeService("tiktok marketing"))
}
