package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		score int
		want  BadgeTier
	}{
		{92, BadgeExpert},
		{90, BadgeExpert},
		{89, BadgeTrusted},
		{80, BadgeTrusted},
		{75, BadgeTrusted},
		{74, BadgeActive},
		{65, BadgeActive},
		{60, BadgeActive},
		{59, BadgeNew},
		{10, BadgeNew},
		{0, BadgeNew},
		{-5, BadgeNew},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeFor(tt.score), "score %d", tt.score)
	}
}

func TestParseTargetType(t *testing.T) {
	for _, raw := range []string{"rate_submission", "insurance_info", "carrier_general", "safety_concern", "carrier_rating"} {
		got, err := ParseTargetType(raw)
		assert.NoError(t, err)
		assert.True(t, got.Valid())
	}
	_, err := ParseTargetType("post")
	assert.Error(t, err)
	_, err = ParseTargetType("")
	assert.Error(t, err)
}
