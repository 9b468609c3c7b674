package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Severity
	}{
		{"low", "low", SeverityLow},
		{"medium", "medium", SeverityMedium},
		{"high", "high", SeverityHigh},
		{"uppercase", "HIGH", SeverityHigh},
		{"padded", "  medium  ", SeverityMedium},
		{"outside enum", "critical", SeverityUnknown},
		{"empty", "", SeverityUnknown},
		{"garbage", "!!", SeverityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.input))
		})
	}
}
