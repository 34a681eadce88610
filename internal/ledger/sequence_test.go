package ledger_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/peter86cu/contable-multiempresa/internal/ledger"
)

func TestNextNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name   string
		latest string
		want   string
	}

	tests := []testCase{
		{name: "FirstEntry", latest: "", want: "ASI-001"},
		{name: "Increment", latest: "ASI-007", want: "ASI-008"},
		{name: "PaddingRollsOver", latest: "ASI-099", want: "ASI-100"},
		{name: "BeyondThreeDigits", latest: "ASI-999", want: "ASI-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.NextNumber(tt.latest, now))
		})
	}
}

func TestNextNumber_MalformedFallsBackToTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	want := fmt.Sprintf("ASI-%d", now.UnixMilli())

	assert.Equal(t, want, ledger.NextNumber("garbage", now))
	assert.Equal(t, want, ledger.NextNumber("ASI-", now))
	assert.Equal(t, want, ledger.NextNumber("ASI-abc", now))
}

func TestFallbackNumber(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, fmt.Sprintf("ASI-%d", now.UnixMilli()), ledger.FallbackNumber(now))
}

func TestNextNumber_SequentialPostingsStrictlyIncrease(t *testing.T) {
	now := time.Now()

	latest := ""

	var numbers []string

	for i := 0; i < 10; i++ {
		latest = ledger.NextNumber(latest, now)
		numbers = append(numbers, latest)
	}

	assert.Equal(t, "ASI-001", numbers[0])
	assert.Equal(t, "ASI-010", numbers[9])

	for i := 1; i < len(numbers); i++ {
		assert.True(t, strings.Compare(numbers[i-1], numbers[i]) < 0,
			"%s should sort before %s", numbers[i-1], numbers[i])
	}
}
