package commands

// #region imports
import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techflow/supportflow/internal/conversation"
	"github.com/techflow/supportflow/internal/intent"
)

// #endregion imports

// #region chat-command

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive support session on stdin/stdout",
	RunE:  runChat,
}

var exitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

func runChat(cmd *cobra.Command, _ []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx := cmd.Context()
	if err := app.startRulesWatcher(ctx); err != nil {
		return err
	}

	fmt.Println("SupportFlow ready.")

	scanner := bufio.NewScanner(os.Stdin)
	email := promptEmail(scanner, os.Stdout)
	fmt.Println("Type a message (or 'quit' to exit):")

	var state *conversation.State

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if exitWords[strings.ToLower(message)] {
			break
		}

		seen := 0
		if state != nil {
			seen = len(state.Responses)
		}

		next, err := app.orch.Turn(ctx, state, message, email)
		if err != nil {
			app.log.Error().Err(err).Msg("turn failed")
			fmt.Println("\nSorry, something went wrong handling that message. Please try again.")
			continue
		}
		if state != nil && next.ID != state.ID {
			// The session was reset mid-loop; everything on it is new output.
			seen = 0
		}

		for _, r := range next.ResponsesSince(seen) {
			fmt.Printf("\n[%s] %s\n", r.Role, r.Text)
		}
		fmt.Println()

		if next.FinalAction == conversation.ActionCancellationProcessed {
			fmt.Println("--- session complete ---")
			state = nil
			continue
		}
		state = next
	}
	return scanner.Err()
}

// promptEmail asks once for an optional account email so the session can be
// personalized. Any line without an address (including just Enter) continues
// the session anonymously.
func promptEmail(scanner *bufio.Scanner, out io.Writer) string {
	fmt.Fprint(out, "Account email for personalized help (press Enter to skip): ")
	if !scanner.Scan() {
		return ""
	}
	return intent.ExtractEmail(scanner.Text())
}

// #endregion chat-command
