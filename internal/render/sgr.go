package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ParseOverrides applies a grep-style capability list such as
// "ms=01;31:fn=35:ln=32" on top of base. Each capability value is an
// SGR parameter sequence. Unknown capabilities and the grep
// capabilities this tool does not support ("mt", "bn") are fatal
// configuration errors.
func ParseOverrides(r *lipgloss.Renderer, caps string, base Styles) (Styles, error) {
	styles := base
	for _, token := range strings.Split(caps, ":") {
		name, seq, found := strings.Cut(token, "=")
		if !found {
			return Styles{}, fmt.Errorf("%q is not a capability override", token)
		}
		style, err := styleFromSGR(r, seq)
		if err != nil {
			return Styles{}, fmt.Errorf("capability %q: %w", name, err)
		}
		switch name {
		case "ms":
			styles.Match = style
		case "ln":
			styles.LineNumber = style
		case "fn":
			styles.SourceName = style
		case "se":
			styles.Separator = style
		case "sl":
			styles.Line = style
		case "cx":
			styles.Context = style
		case "mt", "bn":
			return Styles{}, fmt.Errorf("capability %q is not supported", name)
		default:
			return Styles{}, fmt.Errorf("unknown capability %q", name)
		}
	}
	return styles, nil
}

// styleFromSGR builds a lipgloss style from an SGR parameter sequence
// like "01;31". An empty sequence is the unstyled style.
func styleFromSGR(r *lipgloss.Renderer, seq string) (lipgloss.Style, error) {
	style := r.NewStyle()
	if seq == "" {
		return style, nil
	}

	parts := strings.Split(seq, ";")
	for i := 0; i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return style, fmt.Errorf("bad SGR parameter %q", parts[i])
		}
		switch {
		case n == 0:
			style = r.NewStyle()
		case n == 1:
			style = style.Bold(true)
		case n == 2:
			style = style.Faint(true)
		case n == 3:
			style = style.Italic(true)
		case n == 4:
			style = style.Underline(true)
		case n == 5:
			style = style.Blink(true)
		case n == 7:
			style = style.Reverse(true)
		case n == 9:
			style = style.Strikethrough(true)
		case n >= 30 && n <= 37:
			style = style.Foreground(lipgloss.Color(strconv.Itoa(n - 30)))
		case n == 38 || n == 48:
			// 8-bit color: 38;5;N or 48;5;N
			if i+2 >= len(parts) || parts[i+1] != "5" {
				return style, fmt.Errorf("bad extended color in %q", seq)
			}
			color := lipgloss.Color(parts[i+2])
			if _, err := strconv.Atoi(parts[i+2]); err != nil {
				return style, fmt.Errorf("bad extended color in %q", seq)
			}
			if n == 38 {
				style = style.Foreground(color)
			} else {
				style = style.Background(color)
			}
			i += 2
		case n == 39:
			style = style.UnsetForeground()
		case n >= 40 && n <= 47:
			style = style.Background(lipgloss.Color(strconv.Itoa(n - 40)))
		case n == 49:
			style = style.UnsetBackground()
		case n >= 90 && n <= 97:
			style = style.Foreground(lipgloss.Color(strconv.Itoa(n - 90 + 8)))
		case n >= 100 && n <= 107:
			style = style.Background(lipgloss.Color(strconv.Itoa(n - 100 + 8)))
		default:
			return style, fmt.Errorf("unsupported SGR parameter %d", n)
		}
	}
	return style, nil
}
