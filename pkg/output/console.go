package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const bannerWidth = 60

// Console prints step banners and SUCCESS/ERROR/WARNING lines for humans.
type Console struct {
	w io.Writer

	banner  *color.Color
	success *color.Color
	failure *color.Color
	warning *color.Color
	detail  *color.Color
}

// NewConsole returns a Console writing to w. Colors are disabled when
// NO_COLOR is set or w is not a terminal.
func NewConsole(w io.Writer) *Console {
	c := &Console{
		w:       w,
		banner:  color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		detail:  color.New(color.FgHiBlack),
	}
	if os.Getenv("NO_COLOR") != "" || !isTerminal(w) {
		for _, col := range []*color.Color{c.banner, c.success, c.failure, c.warning, c.detail} {
			col.DisableColor()
		}
	}
	return c
}

// Banner announces step index (1-based) of total.
func (c *Console) Banner(index, total int, name string) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.w, c.banner.Sprint(line))
	fmt.Fprintln(c.w, c.banner.Sprintf("[%d/%d] %s", index, total, name))
	fmt.Fprintln(c.w, c.banner.Sprint(line))
}

func (c *Console) Success(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", c.success.Sprint("SUCCESS:"), fmt.Sprintf(format, a...))
}

func (c *Console) Error(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", c.failure.Sprint("ERROR:"), fmt.Sprintf(format, a...))
}

func (c *Console) Warning(format string, a ...any) {
	fmt.Fprintf(c.w, "%s %s\n", c.warning.Sprint("WARNING:"), fmt.Sprintf(format, a...))
}

// Detail prints indented captured output, e.g. stderr of a failed command.
func (c *Console) Detail(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, l := range strings.Split(text, "\n") {
		fmt.Fprintln(c.w, c.detail.Sprint("    "+l))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
