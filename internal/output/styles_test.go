package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "created returns green", status: StatusCreated, wantFG: ColorGreen},
		{name: "reused returns yellow", status: StatusReused, wantFG: ColorYellow},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "conflict returns bold red", status: StatusConflict, wantBold: true, wantFG: ColorBoldRed},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine("lib/home/home_page.dart", StatusCreated)
	assert.Contains(t, line, "f:")
	assert.Contains(t, line, "lib/home/home_page.dart")
	assert.True(t, strings.HasSuffix(line, StatusCreated))

	long := strings.Repeat("x", 80)
	assert.Contains(t, FormatFileLine(long, StatusSkipped), long+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	out := FormatCheckmark("done")
	assert.Contains(t, out, "✔")
	assert.True(t, strings.HasSuffix(out, " done"))
}
