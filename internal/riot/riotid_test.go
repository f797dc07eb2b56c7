package riot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runesight/runesight/pkg/errors"
)

func TestParseRiotID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RiotID
		wantErr bool
	}{
		{
			name:  "valid",
			input: "Faker#T1",
			want:  RiotID{GameName: "Faker", TagLine: "T1"},
		},
		{
			name:  "valid with spaces in game name",
			input: "Hide on bush#KR1",
			want:  RiotID{GameName: "Hide on bush", TagLine: "KR1"},
		},
		{
			name:  "trims surrounding whitespace",
			input: " Feniax #skye",
			want:  RiotID{GameName: "Feniax", TagLine: "skye"},
		},
		{
			name:    "missing separator",
			input:   "invalid",
			wantErr: true,
		},
		{
			name:    "game name too short",
			input:   "ab#TAG",
			wantErr: true,
		},
		{
			name:    "game name too long",
			input:   "ThisNameIsWayTooLong#TAG",
			wantErr: true,
		},
		{
			name:    "tag line too short",
			input:   "Faker#T",
			wantErr: true,
		},
		{
			name:    "tag line too long",
			input:   "Faker#TOOLONG",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseRiotID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err), "expected a validation error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRiotID_String(t *testing.T) {
	id := RiotID{GameName: "Faker", TagLine: "T1"}
	assert.Equal(t, "Faker#T1", id.String())
}
