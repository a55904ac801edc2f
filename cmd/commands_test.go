package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestSendCommands_RequiredFlags(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		flag string
	}{
		{pumpCmd, "ms"},
		{waterCmd, "ml"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			f := tt.cmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("flag --%s not defined", tt.flag)
			}
			got := f.Annotations[cobra.BashCompOneRequiredFlag]
			if len(got) != 1 || got[0] != "true" {
				t.Errorf("--%s required annotation = %v, want [true]", tt.flag, got)
			}
		})
	}
}

// A missing required flag fails before any connection is opened
func TestSendCommands_MissingFlagFails(t *testing.T) {
	for _, c := range []*cobra.Command{pumpCmd, waterCmd} {
		t.Run(c.Name(), func(t *testing.T) {
			if err := c.ValidateRequiredFlags(); err == nil {
				t.Error("expected missing required flag error")
			}
		})
	}
}
