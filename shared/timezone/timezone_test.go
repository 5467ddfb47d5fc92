package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.Now().Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			value: "2024-01-15",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, timezone.GetLocation()),
		},
		{
			name:  "rfc3339",
			value: "2024-01-20T10:00:00Z",
			want:  time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			value:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	value := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, value.In(timezone.GetLocation()).Format(time.RFC3339), timezone.Format(value, time.RFC3339))
}
