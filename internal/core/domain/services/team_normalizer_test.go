package services_test

import (
	"testing"

	"fieldsync/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestTeamNormalizer_Normalize(t *testing.T) {
	normalizer := services.NewTeamNormalizer([]services.TeamRule{
		{Canonical: "Team A", Tokens: []string{"ทีม a", "tma"}},
		{Canonical: "Team AB", Tokens: []string{"ab crew"}},
		{Canonical: "North Install"},
	})

	tests := []struct {
		raw  string
		want string
	}{
		{"Team A", "Team A"},
		{"  team   a ", "Team A"},
		{"TEAM AB", "Team AB"},
		{"Team AB (old)", "Team AB"},
		{"[tma] backup", "Team A"},
		{"ทีม A", "Team A"},
		{"the ab crew", "Team AB"},
		{"north install 2", "North Install"},
		{"  Unknown Squad ", "Unknown Squad"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.Normalize(tt.raw))
		})
	}
}

func TestTeamNormalizer_EmptyRules(t *testing.T) {
	normalizer := services.NewTeamNormalizer(nil)

	assert.Equal(t, "Team A", normalizer.Normalize(" Team A "))
}
