package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/testpods/pkg/utils/timer"
	fcolor "github.com/fatih/color"
)

// MessageType selects a message's symbol and color.
type MessageType int

const (
	// ErrorType is red with a ✗ symbol.
	ErrorType MessageType = iota
	// WarningType is yellow with a ⚠ symbol.
	WarningType
	// ActivityType has the default color and a ► symbol.
	ActivityType
	// SuccessType is green with a ✔ symbol.
	SuccessType
	// InfoType is blue with an ℹ symbol.
	InfoType
	// TitleType is bold and starts with an emoji.
	TitleType
)

// DefaultTitleEmoji starts title messages that do not set one.
const DefaultTitleEmoji = "⏳"

// Message is a notification for the user.
type Message struct {
	Type    MessageType
	Content string
	Args    []any
	// Timer, when set on a success message, adds the elapsed time below it.
	Timer timer.Timer
	// Emoji replaces DefaultTitleEmoji on title messages.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

func styleOf(msgType MessageType) style {
	switch msgType {
	case ErrorType:
		return style{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return style{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return style{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return style{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return style{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	case TitleType:
		return style{color: fcolor.New(fcolor.Reset, fcolor.Bold)}
	default:
		return style{color: fcolor.New(fcolor.Reset)}
	}
}

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an activity message.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf writes a success message followed by tmr's timing.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof writes an informational message.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a title message starting with emoji.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{Type: TitleType, Content: fmt.Sprintf(format, args...), Emoji: emoji, Writer: writer})
}

// WriteMessage writes msg as one line, indenting continuation lines under the
// first line's text. Write failures are reported on stderr.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	msgStyle := styleOf(msg.Type)

	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = DefaultTitleEmoji
		}

		report(msgStyle.color.Fprintf(writer, "%s %s\n", emoji, content))

		return
	}

	report(msgStyle.color.Fprintf(writer, "%s%s\n", msgStyle.symbol, indent(content, msgStyle.symbol)))

	if msg.Type == SuccessType && msg.Timer != nil {
		total, stage := msg.Timer.GetTiming()

		report(msgStyle.color.Fprintf(writer, "⏲ current: %s\n", stage))
		report(msgStyle.color.Fprintf(writer, "  total:  %s\n", total))
	}
}

func report(_ int, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	padding := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = padding + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
