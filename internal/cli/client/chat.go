package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ChatRequest represents the chat API request.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse represents the chat API response.
type ChatResponse struct {
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	Answered  bool   `json:"answered"`
	SessionID string `json:"session_id"`
}

// ChatCmd creates the chat command.
func ChatCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the support assistant",
		Long: `Sends a message to the support assistant and prints the reply.
Without a message argument, starts an interactive session (exit with Ctrl-D or "exit").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClientWithCmd(cmd)
			outputJSON, _ := cmd.Flags().GetBool("output")

			if len(args) == 1 {
				_, err := sendMessage(api, args[0], sessionID, outputJSON)
				return err
			}
			return runInteractive(api, sessionID)
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID to continue a conversation")

	return cmd
}

func sendMessage(api *APIClient, message, sessionID string, outputJSON bool) (string, error) {
	resp, err := api.Post("/v1/chat", ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return "", err
	}

	var chat ChatResponse
	if err := json.Unmarshal(resp.Data, &chat); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}

	if outputJSON {
		out, _ := json.MarshalIndent(chat, "", "  ")
		fmt.Println(string(out))
	} else {
		fmt.Println(chat.Reply)
	}
	return chat.SessionID, nil
}

func runInteractive(api *APIClient, sessionID string) error {
	fmt.Println("Connected. Type a message, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}

		newSession, err := sendMessage(api, line, sessionID, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		sessionID = newSession
	}
}
