// Package cli реализует подкоманды crmsync поверх оркестратора.
// Подкоманды печатают человекочитаемые отчеты; весь терминальный
// ввод-вывод идет через абстракцию iocli.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/crmsync/internal/auth"
	"github.com/iudanet/crmsync/internal/cli/iocli"
	"github.com/iudanet/crmsync/internal/config"
	"github.com/iudanet/crmsync/internal/models"
	syncengine "github.com/iudanet/crmsync/internal/sync"
)

// PrintUsage печатает справку по подкомандам
func PrintUsage(io iocli.IO) {
	io.Println("Usage: crmsync [flags] <command> [args]")
	io.Println("")
	io.Println("Commands:")
	io.Println("  sync                      run one sync cycle and wait for it")
	io.Println("  auto                      run periodic sync until interrupted")
	io.Println("  status                    show checkpoints and last results")
	io.Println("  history <family>          show retained cycle results for a family")
	io.Println("  conflicts                 list conflicts pending manual review")
	io.Println("  resolve <id> <local|remote>  resolve a pending conflict")
	io.Println("  login                     authenticate and cache credentials")
	io.Println("  version                   show version information")
	io.Println("")
	io.Println("Flags:")
	io.Println("  -config <path>            path to YAML configuration (default crmsync.yaml)")
}

// RunSync выполняет один цикл синхронизации и печатает отчет
func RunSync(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator) error {
	report, err := orch.ManualSync(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printReport(io, report)
	return nil
}

// RunAuto запускает периодическую синхронизацию до SIGINT/SIGTERM
func RunAuto(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := orch.StartAutoSync(ctx, interval); err != nil {
		return fmt.Errorf("failed to start auto sync: %w", err)
	}
	io.Printf("Auto sync started, interval %s. Press Ctrl+C to stop.\n", interval)

	<-ctx.Done()
	io.Println("Stopping...")
	orch.Stop()
	return nil
}

// RunStatus печатает состояние синхронизации по каждому семейству
func RunStatus(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator) error {
	status, err := orch.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	io.Printf("Auto sync:         %s\n", onOff(status.AutoSyncActive))
	io.Printf("Next run:          %s\n", formatTime(status.NextRun))
	io.Printf("Cycle in progress: %s\n", onOff(status.CycleInProgress))
	io.Printf("Pending conflicts: %d\n", status.PendingConflicts)
	io.Println("")

	for _, fs := range status.Families {
		io.Printf("%s:\n", fs.Family)
		if fs.InProgress {
			io.Println("  state:      syncing")
		}
		io.Printf("  remote mark: %s\n", formatTime(fs.Checkpoint.RemoteSince))
		io.Printf("  local mark:  %s\n", formatTime(fs.Checkpoint.LocalSince))
		if fs.Last != nil {
			io.Printf("  last cycle:  %s (applied %d, failed %d)\n",
				formatTime(fs.Last.FinishedAt), fs.Last.Applied(), fs.Last.Failed)
		} else {
			io.Println("  last cycle:  never")
		}
	}
	return nil
}

// RunHistory печатает сохраненные результаты циклов семейства
func RunHistory(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: history <family>")
	}
	family, err := models.ParseFamily(args[0])
	if err != nil {
		return err
	}

	results, err := orch.History(ctx, family)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(results) == 0 {
		io.Printf("No recorded cycles for %s\n", family)
		return nil
	}

	for i := range results {
		printResult(io, &results[i])
	}
	return nil
}

// RunConflicts печатает конфликты, ожидающие ручного разрешения
func RunConflicts(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator) error {
	pending, err := orch.PendingConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read conflicts: %w", err)
	}
	if len(pending) == 0 {
		io.Println("No pending conflicts")
		return nil
	}

	for i := range pending {
		c := &pending[i]
		io.Printf("%s  %s/%s  detected %s\n", c.ID, c.Family, c.EntityID, formatTime(c.DetectedAt))
		io.Printf("  local:  %s at %s\n", c.Local.Op, formatTime(c.Local.UpdatedAt))
		io.Printf("  remote: %s at %s\n", c.Remote.Op, formatTime(c.Remote.UpdatedAt))
	}
	io.Printf("\n%d pending conflict(s). Resolve with: crmsync resolve <id> <local|remote>\n", len(pending))
	return nil
}

// RunResolve вручную разрешает отложенный конфликт
func RunResolve(ctx context.Context, io iocli.IO, orch *syncengine.Orchestrator, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: resolve <conflict-id> <local|remote>")
	}
	conflictID := args[0]

	var winner models.Origin
	switch args[1] {
	case "local":
		winner = models.OriginLocal
	case "remote":
		winner = models.OriginRemote
	default:
		return fmt.Errorf("winner must be local or remote, got %q", args[1])
	}

	if err := orch.ResolveConflict(ctx, conflictID, winner); err != nil {
		return err
	}
	io.Printf("Conflict %s resolved, winner: %s\n", conflictID, winner)
	return nil
}

// RunLogin выполняет аутентификацию и кеширует учетные данные.
// Для схемы jwt недостающие username/password запрашиваются интерактивно.
func RunLogin(ctx context.Context, io iocli.IO, mgr *auth.Manager, cfg *config.Config) error {
	if cfg.AuthType == config.AuthJWT {
		var err error
		if cfg.Username == "" {
			cfg.Username, err = io.ReadInput("Username: ")
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
		}
		if cfg.Password == "" {
			cfg.Password, err = io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}
	}

	if err := mgr.Authenticate(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	io.Println("Login successful, credentials cached")
	return nil
}

func printReport(io iocli.IO, report *models.CycleReport) {
	for i := range report.Results {
		printResult(io, &report.Results[i])
	}
	io.Printf("Total: applied %d, failed %d, took %s\n",
		report.TotalApplied(), report.TotalFailed(),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

func printResult(io iocli.IO, r *models.SyncResult) {
	io.Printf("%s  %s  created %d, updated %d, deleted %d, unchanged %d, conflicts %d (deferred %d), failed %d",
		formatTime(r.FinishedAt), r.Family,
		r.Created, r.Updated, r.Deleted, r.Unchanged, r.Conflicts, r.Deferred, r.Failed)
	if r.RolledBack > 0 {
		io.Printf(", rolled back %d", r.RolledBack)
	}
	if r.Aborted {
		io.Printf(", ABORTED")
	}
	io.Println("")
	for _, e := range r.Errors {
		io.Printf("  error: %s\n", e)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
