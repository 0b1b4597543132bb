package main

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

// TestMain disables terminal colors so command output can be matched verbatim
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}
