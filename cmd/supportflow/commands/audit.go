package commands

// #region imports
import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/techflow/supportflow/internal/audit"
	"github.com/techflow/supportflow/internal/config"
	"github.com/techflow/supportflow/internal/directory"
)

// #endregion imports

// #region audit-command

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent compliance audit entries",
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of entries to show")
}

func runAudit(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := directory.NewStore(cfg.Data.StatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	log, err := audit.NewLog(store.DB())
	if err != nil {
		return err
	}

	entries, err := log.Recent(auditLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no audit entries")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-6d %-24s %-36s %s\n", e.ID, e.CreatedAt.Format(time.RFC3339), e.Action, e.CustomerID)
	}
	return nil
}

// #endregion audit-command
