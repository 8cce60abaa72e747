package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with colors and a compact Rust-like layout.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError     = color.New(color.FgRed)
	colorErrorBold = color.New(color.FgHiRed, color.Bold)
	colorCode      = color.New(color.FgHiBlack)
	colorPipe      = color.New(color.FgHiBlack)
	colorCaret     = color.New(color.FgHiRed)
	colorHint      = color.New(color.FgHiYellow)
	colorNote      = color.New(color.FgHiBlue)
)

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code    ErrorCode
	Kind    string // "compile error", "runtime error", etc.
	Message string
	Column  int    // 1-based; 0 when unknown
	Source  string // The program text
	Hint    string
	Note    string
}

// Format formats the error as a string.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "1/5".
// The prefix replaces the error code in the header.
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder
	f.writeHeader(&b, err, prefix)
	f.writeSource(&b, err)
	if err.Hint != "" {
		b.WriteString(f.paint(colorPipe, " = "))
		b.WriteString(f.paint(colorHint, "hint: "))
		b.WriteString(err.Hint)
		b.WriteString("\n")
	}
	if err.Note != "" {
		b.WriteString(f.paint(colorPipe, " = "))
		b.WriteString(f.paint(colorNote, "note: "))
		b.WriteString(err.Note)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatError formats any error. Errors defined by this package are
// rendered with their source context; others are rendered as a bare
// "error: message" header.
func (f *Formatter) FormatError(err error) string {
	var e Error
	if As(err, &e) {
		return f.Format(e.ToFormatted())
	}
	return f.Format(&FormattedError{Kind: "error", Message: err.Error()})
}

// FormatMultiple formats multiple errors with consistent styling.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return f.Format(errs[0])
	}
	var b strings.Builder
	total := len(errs)
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, total)))
	}
	b.WriteString("\n")
	b.WriteString(f.paint(colorErrorBold, fmt.Sprintf("found %d errors", total)))
	b.WriteString("\n")
	return b.String()
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(colorErrorBold, label))
	if prefix != "" {
		b.WriteString(f.paint(colorCode, "["+prefix+"]"))
	} else if err.Code != "" {
		b.WriteString(f.paint(colorCode, "["+err.Code.String()+"]"))
	}
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError) {
	if err.Source == "" {
		return
	}
	b.WriteString(f.paint(colorPipe, " | "))
	b.WriteString(err.Source)
	b.WriteString("\n")
	if err.Column > 0 {
		b.WriteString(f.paint(colorPipe, " | "))
		b.WriteString(strings.Repeat(" ", caretIndent(err.Source, err.Column-1)))
		b.WriteString(f.paint(colorCaret, "^"))
		b.WriteString("\n")
	}
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

// As is errors.As from the standard library, re-exported so callers that
// import this package do not also need the standard one.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
