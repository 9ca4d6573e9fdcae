package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/entrhq/gradebatch/pkg/config"
)

// promptMissing asks interactively for any credential or course URL not
// already supplied by flags, file or environment. The password prompt
// never echoes.
func promptMissing(cfg *config.Config) error {
	reader := bufio.NewReader(os.Stdin)

	if cfg.Email == "" {
		email, err := promptLine(reader, "Gradescope email: ")
		if err != nil {
			return err
		}
		cfg.Email = email
	}

	if cfg.Password == "" {
		fmt.Print("Gradescope password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		cfg.Password = string(secret)
	}

	if cfg.CourseURL == "" {
		courseURL, err := promptLine(reader, "Course URL (e.g. https://www.gradescope.com/courses/123456): ")
		if err != nil {
			return err
		}
		cfg.CourseURL = courseURL
	}

	return nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
