package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_NextWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)

	require.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), NextDay(monday))
	require.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Monday))
	require.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), NextWeekday(monday, time.Friday))
}

func Test_LastWeekday(t *testing.T) {
	sunday := time.Date(2024, time.January, 7, 23, 0, 0, 0, time.UTC)

	require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), LastWeekday(sunday, time.Monday))
	require.Equal(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), LastWeekday(sunday, time.Sunday))
}
