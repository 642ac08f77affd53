// Command exprsh is the excluded interactive driver named in §6.1/§6.2: a
// thin line-editing loop over the exprengine facade. It is grounded on the
// teacher's main.go runREPL/runInteractiveREPL/runBufferedREPL split
// (interactive liner session when stdin is a terminal, a bufio.Scanner
// loop otherwise) and stops on the literal input line "exit", per §6.2's
// exit condition for the excluded driver.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/exprcalc/eval"
	"github.com/sergev/exprcalc/exprengine"
)

func main() {
	if isInteractive() {
		runInteractiveREPL()
		return
	}
	runBufferedREPL(bufio.NewScanner(os.Stdin))
}

// evalLine constructs a Handler from line. If it is invalid it prints
// "invalid" (with the failure offset when known) and stops; otherwise it
// prints, in order, the canonical text, the LaTeX form, an ASCII tree
// diagram, and the computed value — §6.1's construct/is_valid/expr/latex/
// tree/calc surface exercised in sequence.
func evalLine(line string) {
	h := exprengine.Construct(line)
	valid, offset, hasOffset := h.IsValid()
	if !valid {
		if hasOffset {
			fmt.Printf("invalid at offset %d\n", offset)
		} else {
			fmt.Println("invalid")
		}
		return
	}
	fmt.Println("expr:", h.Expr())
	fmt.Println("latex:", h.Latex())
	fmt.Println("tree:")
	fmt.Println(h.Tree(2))
	fmt.Println("calc:", h.Calc(eval.NewAssist(nil, nil)).ToText())
}

func runBufferedREPL(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}
		evalLine(line)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
	}
}

func runInteractiveREPL() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		input, err := state.Prompt("expr> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		line := strings.TrimSpace(input)
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}
		state.AppendHistory(line)
		evalLine(line)
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".exprsh_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
