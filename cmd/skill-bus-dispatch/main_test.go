package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_gatherOptions(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		expected options
	}{
		{
			name: "defaults",
			args: []string{},
			expected: options{
				timing: "",
				source: "tool",
			},
		},
		{
			name: "explicit timing and source",
			args: []string{"--timing", "post", "--source", "prompt"},
			expected: options{
				timing: "post",
				source: "prompt",
			},
		},
		{
			name: "explicit cwd",
			args: []string{"--cwd", "/some/project"},
			expected: options{
				timing: "",
				source: "tool",
				cwd:    "/some/project",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			got := gatherOptions(fs, tc.args...)
			if tc.expected.cwd == "" {
				tc.expected.cwd = got.cwd // defaulted to os.Getwd(), not under test here
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	cases := []struct {
		name    string
		o       options
		wantErr bool
	}{
		{"valid pre/tool", options{timing: "pre", source: "tool"}, false},
		{"valid post/prompt", options{timing: "post", source: "prompt"}, false},
		{"valid complete", options{timing: "complete", source: "tool"}, false},
		{"invalid timing", options{timing: "later", source: "tool"}, true},
		{"invalid source", options{timing: "pre", source: "carrier-pigeon"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.o.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
