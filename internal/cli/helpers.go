package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// promptLine prints a prompt and reads one trimmed line. EOF on a fresh
// line is reported so interactive loops can wind down cleanly.
func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	for {
		answer, err := promptLine(reader, out, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

// optionLetter labels option index 0 as A, 1 as B, and so on.
func optionLetter(index int) string {
	return string(rune('A' + index))
}

// parseLetters turns input like "a c" or "A,C" into option indices. Every
// letter must be within the option range; duplicates are preserved since a
// repeated letter is a toggle in multi-answer mode.
func parseLetters(input string, optionCount int) ([]int, error) {
	if optionCount < 1 {
		return nil, errors.New("question has no options")
	}

	fields := strings.FieldsFunc(strings.ToUpper(input), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, nil
	}

	maxLetter := byte('A' + optionCount - 1)
	indices := make([]int, 0, len(fields))
	for _, field := range fields {
		if len(field) != 1 || field[0] < 'A' || field[0] > maxLetter {
			return nil, fmt.Errorf("enter letters A-%c", maxLetter)
		}
		indices = append(indices, int(field[0]-'A'))
	}
	return indices, nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func formatIndices(indices []int) string {
	if len(indices) == 0 {
		return "-"
	}
	parts := make([]string, len(indices))
	for i, index := range indices {
		parts[i] = optionLetter(index)
	}
	return strings.Join(parts, ", ")
}
