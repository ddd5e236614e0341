package prompt

import (
	"context"
	"fmt"
)

// Choose asks the driver to pick one of options and returns the chosen label.
func Choose(ctx context.Context, driver PromptDriver, message string, options ...string) (string, error) {
	idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: options, PageSize: len(options)})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return options[idx], nil
}
