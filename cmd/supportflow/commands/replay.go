package commands

// #region imports
import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techflow/supportflow/internal/scenario"
)

// #endregion imports

// #region replay-command

var replayCmd = &cobra.Command{
	Use:   "replay <fixture.json>",
	Short: "Replay a classification fixture through the keyword cascade",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	fixture, err := scenario.LoadFixture(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Fixture: %s (%d cases)\n\n", fixture.Description, len(fixture.Cases))

	results := scenario.Replay(fixture)
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %-32s intent=%s route=%s", status, r.Name, r.GotIntent, r.GotRoute)
		if r.Reason != "" {
			fmt.Printf("  (%s)", r.Reason)
		}
		fmt.Println()
	}

	s := scenario.Summarize(results)
	fmt.Printf("\n%d cases: %d passed, %d failed\n", s.TotalCases, s.Passed, s.Failed)
	if s.Failed > 0 {
		return fmt.Errorf("%d case(s) failed", s.Failed)
	}
	return nil
}

// #endregion replay-command
