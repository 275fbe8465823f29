// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskchat/internal/service"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [ ] {TITLE}\n", with "[x]" for completed tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeTitle(task.Title))
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(w, "      %s\n", flatten(desc))
	}
}

// FormatConversation formats a numbered conversation line.
func FormatConversation(w io.Writer, num int, conv service.Conversation) {
	title := strings.TrimSpace(conv.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%4d  %s", num, title)
	if preview := strings.TrimSpace(conv.LastMessage); preview != "" {
		line += "  | " + truncate(flatten(preview), 60)
	}
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "      id: %s\n", conv.ID)
}

// FormatMessage formats one chat message with its tool calls.
func FormatMessage(w io.Writer, msg service.Message) {
	fmt.Fprintf(w, "%s: %s\n", msg.Role, msg.Content)
	for _, tc := range msg.ToolCalls {
		FormatToolCall(w, tc)
	}
}

// FormatToolCall formats a single tool-call record.
func FormatToolCall(w io.Writer, tc service.ToolCall) {
	mark := "ok"
	if !tc.Success {
		mark = "failed"
	}
	fmt.Fprintf(w, "  [tool] %s: %s\n", tc.ToolName, mark)
}

// normalizeTitle normalizes a task title for display.
// Empty or whitespace-only titles become "(untitled)"; newlines are
// replaced with spaces.
func normalizeTitle(title string) string {
	title = flatten(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
