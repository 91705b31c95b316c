// Package mini implements a lightweight, minimalist interface for media search and tracking.
package mini

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/trakr-cli/trakr/icon"
	"github.com/trakr-cli/trakr/style"
	"github.com/trakr-cli/trakr/util"
)

// bind is a single-key action offered alongside the numbered menu entries.
type bind struct {
	key         string
	description string
}

func (b *bind) eq(other *bind) bool {
	return b == other
}

func (b *bind) String() string {
	return fmt.Sprintf("[%s] %s", style.Fg(style.AccentColor)(b.key), b.description)
}

var (
	quit    = &bind{"q", "quit"}
	prev    = &bind{"p", "previous"}
	next    = &bind{"n", "finish & next"}
	finish  = &bind{"f", "finish"}
	rewatch = &bind{"r", "rewatch"}
	update  = &bind{"u", "update progress"}
	back    = &bind{"b", "back"}
	search  = &bind{"s", "search"}
)

var stdin = bufio.NewReader(os.Stdin)

type input struct {
	value string
}

// getInput prompts on standard input until a line satisfies the validator.
func getInput(validate func(string) bool) (*input, error) {
	for {
		fmt.Print(style.Fg(style.AccentColor)("> "))

		line, err := stdin.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if validate(line) {
			return &input{value: line}, nil
		}

		fail("Invalid input")
	}
}

// menu renders numbered items followed by the given binds, quit always last,
// and blocks until the user picks one. Exactly one of the returned bind and
// item is set.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	var none T

	binds = append(binds, quit)

	for i, item := range items {
		index := style.Fg(style.SecondaryColor)(fmt.Sprintf("[%d]", i+1))
		fmt.Printf("%s %s\n", index, util.Truncate(item.String(), truncateAt))
	}

	for _, b := range binds {
		fmt.Println(b)
	}

	for {
		in, err := getInput(func(string) bool { return true })
		if err != nil {
			return nil, none, err
		}

		for _, b := range binds {
			if b.key == in.value {
				return b, none, nil
			}
		}

		if index, err := strconv.Atoi(in.value); err == nil && 1 <= index && index <= len(items) {
			return nil, items[index-1], nil
		}

		fail("Invalid choice")
	}
}

func title(text string) {
	fmt.Println(style.Title(text))
}

func progress(text string) (eraser func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), text))
}

func fail(text string) {
	fmt.Println(style.Fg(style.ErrorColor)(fmt.Sprintf("%s %s", icon.Get(icon.Fail), text)))
}

func success(text string) {
	fmt.Println(style.Fg(style.SuccessColor)(fmt.Sprintf("%s %s", icon.Get(icon.Success), text)))
}
