//go:build tools

package tools

// Keeps cobra/doc in go.mod for cmd/gendoc, which is built with "go run".
import (
	_ "github.com/spf13/cobra/doc"
)
