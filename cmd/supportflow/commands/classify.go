package commands

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/techflow/supportflow/internal/intent"
)

// #endregion imports

// #region classify-command

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Classify a message through the deterministic keyword cascade",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(_ *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	in := intent.ClassifyFallback(message)

	out := struct {
		Intent string `json:"intent"`
		Route  string `json:"route"`
		Email  string `json:"email,omitempty"`
	}{
		Intent: string(in),
		Route:  string(intent.RouteFor(in)),
		Email:  intent.ExtractEmail(message),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}
	return nil
}

// #endregion classify-command
