package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    Duration
		wantErr string
	}{
		{
			name: "success: hours",
			give: "72h",
			want: NewDuration(72 * time.Hour),
		},
		{
			name: "success: mixed units",
			give: "1h30m",
			want: NewDuration(90 * time.Minute),
		},
		{
			name:    "failure: not a duration",
			give:    "soon",
			wantErr: `time: invalid duration "soon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDuration(tt.give)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_MustParseDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewDuration(time.Hour), MustParseDuration("1h"))
	assert.Panics(t, func() {
		MustParseDuration("soon")
	})
}

func Test_Duration_JSON(t *testing.T) {
	t.Parallel()

	t.Run("success: encodes as a duration string", func(t *testing.T) {
		t.Parallel()

		b, err := NewDuration(30 * time.Minute).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, []byte(`"30m0s"`), b)
	})

	t.Run("success: round-trips", func(t *testing.T) {
		t.Parallel()

		var got Duration
		require.NoError(t, got.UnmarshalJSON([]byte(`"48h"`)))
		assert.Equal(t, NewDuration(48*time.Hour), got)
	})

	t.Run("failure: bare numbers are rejected", func(t *testing.T) {
		t.Parallel()

		var got Duration
		err := got.UnmarshalJSON([]byte(`3600`))
		require.ErrorContains(t, err, "duration must be a string")
	})

	t.Run("failure: invalid duration string", func(t *testing.T) {
		t.Parallel()

		var got Duration
		err := got.UnmarshalJSON([]byte(`"soon"`))
		require.EqualError(t, err, `time: invalid duration "soon"`)
	})
}
