package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"home", "Home"},
		{"home_detail", "HomeDetail"},
		{"homePage", "HomePage"},
		{"HomePage", "HomePage"},
		{"user-list view", "UserListView"},
		{"  spaced  out  ", "SpacedOut"},
		{"v2_api", "V2Api"},
		{"", ""},
		{"   ", ""},
		{"__--__", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.input))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"home", "home"},
		{"HomePage", "home_page"},
		{"homePage", "home_page"},
		{"home_detail", "home_detail"},
		{"home-detail", "home_detail"},
		{"User List", "user_list"},
		{"api2Client", "api2_client"},
		{"HTTPServer", "httpserver"},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.input))
		})
	}
}

func TestTitleCase_Idempotent(t *testing.T) {
	for _, in := range []string{"home_detail", "homePage", "a b c", "order-history-2", "X"} {
		once := TitleCase(in)
		assert.Equal(t, once, TitleCase(once), "input %q", in)
	}
}

func TestSnakeOfTitle_DependsOnSegmentation(t *testing.T) {
	// Same lower-case words, different separators.
	variants := []string{"order_history", "order-history", "order history", "order__history", "orderHistory"}
	for _, v := range variants {
		assert.Equal(t, "order_history", SnakeCase(TitleCase(v)), "input %q", v)
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b2", "C"}, Words("a..b2__C"))
	assert.Empty(t, Words("***"))
}
