package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeUsage(w, p.commands, 0)
}

func writeUsage(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share one entry
	names := make(map[*Command][]string)
	var order []*Command
	for name, command := range commands {
		if _, ok := names[command]; !ok {
			order = append(order, command)
		}
		names[command] = append(names[command], name)
	}
	// shorter aliases first
	for _, command := range order {
		slices.SortFunc(names[command], func(a, b string) int {
			if len(a) != len(b) {
				return len(a) - len(b)
			}
			return strings.Compare(a, b)
		})
	}
	slices.SortFunc(order, func(a, b *Command) int {
		return strings.Compare(names[a][0], names[b][0])
	})

	indent := strings.Repeat("  ", depth)
	for _, command := range order {
		line := indent + strings.Join(names[command], ", ")
		if command != nil && len(command.Args) > 0 {
			line += " " + strings.Join(command.Args, " ")
		}
		if command != nil && command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if command != nil && len(command.Subs) > 0 {
			writeUsage(w, command.Subs, depth+1)
		}
	}
}
