package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// RenderText 把 view tree 轉成終端機文字，width <= 0 時不限制寬度
func RenderText(root *Node, width int) string {
	if root == nil {
		return ""
	}
	return render(root, width)
}

func render(n *Node, width int) string {
	switch n.Type {
	case TypeVBox, TypeList:
		return renderVertical(n, width)

	case TypeHBox, TypeItem:
		parts := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if s := render(c, 0); s != "" {
				parts = append(parts, s)
			}
		}
		line := strings.Join(parts, " ")
		if n.Bool("selected") {
			line = selectedStyle.Render(line)
		}
		return align(n, line, width)

	case TypeText:
		text := n.Props["text"]
		switch n.Props["style"] {
		case "title":
			text = titleStyle.Render(text)
		case "muted":
			text = mutedStyle.Render(text)
		}
		return align(n, text, width)

	case TypeButton:
		return buttonStyle.Render("[" + n.Props["text"] + "]")

	case TypeCheckbox:
		mark := "[ ]"
		if n.Bool("checked") {
			mark = "[x]"
		}
		if label := n.Props["text"]; label != "" {
			return mark + " " + label
		}
		return mark

	case TypeBadge:
		return badgeStyle.Render(n.Props["text"])

	case TypeInput:
		value := n.Props["value"]
		if value == "" {
			value = mutedStyle.Render(n.Props["placeholder"])
		}
		return "> " + value

	case TypeModal:
		body := renderVertical(n, 0)
		if title := n.Props["title"]; title != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body)
		}
		return modalStyle.Render(body)
	}
	return renderVertical(n, width)
}

func renderVertical(n *Node, width int) string {
	lines := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if s := render(c, width); s != "" {
			lines = append(lines, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func align(n *Node, s string, width int) string {
	if width <= 0 {
		return s
	}
	if n.Props["align"] == "right" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(s)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
