// Package cmds holds the command framework of the credat flows. Every flow
// is a Command value: Validate checks the inputs without side effects and
// Exec runs the flow, writes the human rendering to its writer and returns
// the structured Result.
package cmds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/findy-network/credat/agent/storage/api"
	"github.com/findy-network/credat/core"
	"github.com/lainio/err2/try"
)

var (
	ErrNoStore = errors.New("trust store is not set")
	ErrNoSDK   = errors.New("identity SDK is not set")
)

// Cmd carries what every flow needs. The store handle is built once per
// invocation.
type Cmd struct {
	Store api.TrustStore
	SDK   core.SDK
	Ctx   context.Context
}

func (c Cmd) Validate() error {
	if c.Store == nil {
		return ErrNoStore
	}
	if c.SDK == nil {
		return ErrNoSDK
	}
	return nil
}

// Context returns Ctx or context.Background when it's not set.
func (c Cmd) Context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// Fprintln is fmt.Fprintln but it allows writer to be nil. Note! it throws an
// error.
func Fprintln(w io.Writer, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf but it allows writer to be nil. Note! it throws an
// error.
func Fprintf(w io.Writer, format string, a ...any) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	dimColor    = color.New(color.Faint)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
	stepColor   = color.New(color.Bold, color.FgYellow)
)

// Header prints a section title with an underline.
func Header(w io.Writer, text string) {
	Fprintln(w)
	Fprintf(w, "  %s\n", headerColor.Sprint(text))
	Fprintf(w, "  %s\n", dimColor.Sprint(strings.Repeat("─", len(text)+2)))
}

func Label(w io.Writer, key, value string) {
	Fprintf(w, "  %s %s\n", dimColor.Sprint(key+":"), value)
}

func Success(w io.Writer, text string) {
	Fprintf(w, "  %s %s\n", okColor.Sprint("✓"), text)
}

func Fail(w io.Writer, text string) {
	Fprintf(w, "  %s %s\n", failColor.Sprint("✗"), text)
}

// Step prints a numbered step title of a walkthrough.
func Step(w io.Writer, num int, text string) {
	Fprintln(w)
	Fprintf(w, "  %s %s\n", stepColor.Sprintf("[%d]", num), text)
}

// Dim renders secondary information like paths and tokens.
func Dim(s string) string {
	return dimColor.Sprint(s)
}

// Truncate shortens s to n runes and marks the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Constraints prints the fields of c which are set.
func Constraints(w io.Writer, c *core.Constraints) {
	if c == nil {
		return
	}
	if c.MaxTransactionValue != nil {
		Label(w, "Max Value", FormatNumber(*c.MaxTransactionValue))
	}
	if len(c.AllowedDomains) > 0 {
		Label(w, "Allowed Domains", strings.Join(c.AllowedDomains, ", "))
	}
	if c.RateLimit != nil {
		Label(w, "Rate Limit", FormatNumber(*c.RateLimit))
	}
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
