package selection

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	promptSuffixConstant           = " "
	affirmativeShortAnswerConstant = "y"
	affirmativeLongAnswerConstant  = "yes"
	responseLineTerminatorConstant = '\n'
)

// ConfirmationPrompter asks a yes/no question.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and accepts y or yes in any case. Any other answer,
// including end of input, is a no.
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt+promptSuffixConstant); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString(responseLineTerminatorConstant)
	if readError != nil && !errors.Is(readError, io.EOF) {
		return false, readError
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case affirmativeShortAnswerConstant, affirmativeLongAnswerConstant:
		return true, nil
	default:
		return false, nil
	}
}
