package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "12,345", FormatCount(12345))
	assert.Equal(t, "6,000,000", FormatCount(6_000_000))
	assert.Equal(t, "-1,500", FormatCount(-1500))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 40, BarWidth(1000, 1000, 40))
	assert.Equal(t, 20, BarWidth(500, 1000, 40))
	assert.Equal(t, 1, BarWidth(1, 1_000_000, 40))
	assert.Equal(t, 0, BarWidth(0, 1000, 40))
	assert.Equal(t, 0, BarWidth(10, 0, 40))
}

func TestBarChart(t *testing.T) {
	out := BarChart([]Bar{
		{Label: "Followers", Value: 1000},
		{Label: "Total Posts", Value: 20},
		{Label: "Empty", Value: 0},
	}, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Followers")
	assert.Contains(t, lines[0], strings.Repeat("█", 10))
	assert.Contains(t, lines[0], "1,000")
	assert.Contains(t, lines[1], "█")
	assert.NotContains(t, lines[2], "█")
}

func TestTestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewTestSpinner(&buf)

	s.Start()
	s.Start()
	s.SetSuffix("Loading models")
	s.SetFinalMSG("done\n")
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "[SPINNER START]"))
	assert.Equal(t, 1, strings.Count(out, "[SPINNER STOP]"))
	assert.Contains(t, out, "Loading models")
	assert.Contains(t, out, "[FINAL MSG] done")
}

func TestNewSpinnerHonoursTestEnv(t *testing.T) {
	t.Setenv(TestEnv, "true")
	_, ok := NewSpinner(&bytes.Buffer{}).(*TestSpinner)
	assert.True(t, ok)

	t.Setenv(TestEnv, "")
	_, ok = NewSpinner(&bytes.Buffer{}).(*TerminalSpinner)
	assert.True(t, ok)
}

func TestPrintFormats(t *testing.T) {
	data := map[string]int{"followers": 6000}

	var js bytes.Buffer
	PrintJSON(&js, data)
	assert.Equal(t, "{\n  \"followers\": 6000\n}\n", js.String())

	var ym bytes.Buffer
	PrintYAML(&ym, data)
	assert.Equal(t, "followers: 6000\n", ym.String())
}
