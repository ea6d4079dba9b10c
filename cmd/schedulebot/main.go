package main

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"schedulebot/config"
	"schedulebot/internal/adapters/alert"
	"schedulebot/internal/adapters/timer"
	"schedulebot/internal/clock"
	"schedulebot/internal/delivery/chat"
	"schedulebot/internal/domain"
	"schedulebot/internal/repository/postgres"
	"schedulebot/internal/repository/rolefile"
	"schedulebot/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	alerter, err := alert.NewAlerter(alert.Config{
		Provider:    cfg.AlertProvider,
		FromAddress: cfg.AlertFromAddress,
		ToAddress:   cfg.AlertToAddress,
		SES: alert.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to build alerter", "error", err)
		os.Exit(1)
	}

	transport := newConsoleTransport(os.Stdout)
	notifier := domain.NotifierFunc(func(ctx context.Context, destination int64, text string) error {
		return transport.Send(ctx, destination, text)
	})

	tmr := timer.NewCronTimer(notifier, logger)
	tmr.Start()

	repo := postgres.NewScheduleRepository(db, loc)
	roleStore := rolefile.New(cfg.RolesFile)
	gate := services.NewRoleGate(roleStore, cfg.OwnerID, logger)
	scheduler := services.NewReminderScheduler(tmr, alerter, logger)
	sessions := services.NewSessionTable()
	clk := clock.NewSystem(loc)
	wizard := services.NewWizard(sessions, repo, scheduler, gate, transport, clk, loc, logger)
	schedules := services.NewScheduleService(repo, gate)
	router := chat.NewRouter(transport, wizard, gate, schedules, loc, logger)

	logger.Info("schedulebot running",
		"timezone", cfg.Timezone, "roles_file", cfg.RolesFile, "environment", cfg.Environment)

	go readLoop(ctx, router, logger)

	<-sigCh
	logger.Info("shutting down")
	cancel()
	<-tmr.Stop().Done()
}

// readLoop feeds console lines into the router. Line format:
// "USER_ID text..." for messages, "USER_ID btn:PAYLOAD" for button presses.
func readLoop(ctx context.Context, router *chat.Router, logger *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, rest, ok := splitInput(line)
		if !ok {
			logger.Warn("input must start with a numeric user id", "line", line)
			continue
		}
		var err error
		if payload, isButton := strings.CutPrefix(rest, "btn:"); isButton {
			err = router.HandleCallback(ctx, id, payload)
		} else {
			err = router.HandleMessage(ctx, id, rest)
		}
		if err != nil {
			logger.Warn("input handling failed", "user_id", id, "error", err)
		}
	}
}

func splitInput(line string) (int64, string, bool) {
	idPart, rest, found := strings.Cut(line, " ")
	if !found {
		return 0, "", false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, strings.TrimSpace(rest), true
}
