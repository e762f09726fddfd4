package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// IsQuit reports whether the command exits the application.
func (c Command) IsQuit() bool {
	return c.Name == "q" || c.Name == "quit"
}

// IsHelp reports whether the command opens the key reference.
func (c Command) IsHelp() bool {
	return c.Name == "h" || c.Name == "help"
}

// Destination maps navigation commands to a route: the tab names, "new",
// "show <id>" and "edit <id>". A raw route path such as "detail/3" is
// accepted as well.
func (c Command) Destination() (Destination, error) {
	switch c.Name {
	case "home", "calendar", "insights", "settings", "new":
		return To(Route(c.Name)), nil
	case "show", "edit":
		id, err := strconv.ParseInt(c.Args, 10, 64)
		if err != nil || id <= 0 {
			return Destination{}, fmt.Errorf("%s: entry id required", c.Name)
		}
		if c.Name == "show" {
			return Detail(id), nil
		}
		return Edit(id), nil
	}
	return Parse(c.Name)
}
