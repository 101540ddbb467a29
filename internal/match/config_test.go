package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigThresholds(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidatePopulation())

	require.Equal(t, 6, cfg.PlayerLateThreshold())
	require.Equal(t, 2, cfg.GoalieLateThreshold())
	require.Equal(t, 8, cfg.ActivePlayers())

	// Four field players per team move the late threshold with them.
	cfg.PlayersPerTeam = 4
	require.Equal(t, 8, cfg.PlayerLateThreshold())
	require.Equal(t, 10, cfg.ActivePlayers())
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name        string
		modify      func(c *Config)
		expectedErr string
	}{
		{"no players", func(c *Config) { c.Players = 0 }, ".*players must be positive.*"},
		{"no goalies", func(c *Config) { c.Goalies = -1 }, ".*goalies must be positive.*"},
		{"no teams", func(c *Config) { c.Teams = 0 }, ".*teams must be in.*"},
		{"three teams", func(c *Config) { c.Teams = 3 }, ".*teams must be in.*"},
		{"empty teams", func(c *Config) { c.PlayersPerTeam = 0 }, ".*players per team must be positive.*"},
		{"inverted arrival", func(c *Config) { c.ArrivalMin, c.ArrivalMax = time.Second, time.Millisecond }, ".*invalid arrival window.*"},
		{"negative duration", func(c *Config) { c.MatchDuration = -time.Second }, ".*negative match duration.*"},
		{"valid", func(c *Config) {}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.expectedErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, ErrInvalidConfig.Equal(err))
			require.Regexp(t, tc.expectedErr, err.Error())
		})
	}
}

func TestValidatePopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Players = 5
	err := cfg.ValidatePopulation()
	require.Error(t, err)
	require.Regexp(t, ".*5 players cannot fill 2 teams of 3.*", err.Error())

	cfg = DefaultConfig()
	cfg.Goalies = 1
	err = cfg.ValidatePopulation()
	require.Error(t, err)
	require.Regexp(t, ".*1 goalies cannot cover 2 teams.*", err.Error())

	// Shape errors win over population errors.
	cfg.Players = 0
	require.Regexp(t, ".*players must be positive.*", cfg.ValidatePopulation().Error())
}
