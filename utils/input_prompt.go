package utils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/meysamhadeli/zendocs/constants/lipgloss"
)

// ConfirmPrompt asks a yes/no question and reports whether the user agreed.
// Anything other than "y" or "yes" counts as no, including EOF.
func ConfirmPrompt(ctx context.Context, reader *bufio.Reader, out io.Writer, question string) (bool, error) {
	answerChan := make(chan string, 1)
	errChan := make(chan error, 1)

	fmt.Fprint(out, lipgloss.BlueSky.Render(question+" (y/N): "))

	go func() {
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			errChan <- fmt.Errorf("error reading input: %w", err)
			return
		}
		answerChan <- answer
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return false, ctx.Err()
	case err := <-errChan:
		return false, err
	case answer := <-answerChan:
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}
}
