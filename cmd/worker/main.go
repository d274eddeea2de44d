package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/config"
	"github.com/fitkz/fitcoach/internal/jobs"
	"github.com/fitkz/fitcoach/internal/metrics"
	"github.com/fitkz/fitcoach/internal/notify"
	"github.com/fitkz/fitcoach/internal/repository"
	"github.com/fitkz/fitcoach/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	pool, err := repository.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	store := repository.NewStore(pool)
	uow := repository.NewUnitOfWork(pool)
	coach := service.NewCoach(store, uow, logger, service.WithWeeklyGoal(cfg.WeeklyGoal))

	var notifier notify.Notifier = notify.LogNotifier{Log: logger}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Token)
	}

	redis := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	client := asynq.NewClient(redis)
	defer client.Close() //nolint:errcheck

	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: 8,
		Queues: map[string]int{
			"reminders": 10,
			"default":   5,
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskReminderTick, func(ctx context.Context, t *asynq.Task) error {
		due, err := coach.UsersDueReminder(ctx, time.Now())
		if err != nil {
			return err
		}
		for _, u := range due {
			payload, err := json.Marshal(jobs.ReminderSendPayload{
				ChatID: u.ChatID,
				Text:   coach.ReminderMessage(&u),
			})
			if err != nil {
				return err
			}
			task := asynq.NewTask(jobs.TaskReminderSend, payload)
			if _, err := client.EnqueueContext(ctx, task, asynq.Queue("reminders")); err != nil {
				logger.Error().Err(err).Int64("chat_id", u.ChatID).Msg("enqueue reminder")
			}
		}
		if len(due) > 0 {
			logger.Info().Int("count", len(due)).Msg("reminders fanned out")
		}
		return nil
	})

	mux.HandleFunc(jobs.TaskReminderSend, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.ReminderSendPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.Error().Err(err).Msg("bad reminder payload, dropping")
			return nil
		}
		if err := notifier.Send(ctx, p.ChatID, p.Text); err != nil {
			return err
		}
		metrics.RemindersSent.Inc()
		return nil
	})

	mux.HandleFunc(jobs.TaskWeeklyReportFanout, func(ctx context.Context, t *asynq.Task) error {
		users, err := store.UsersWithReminders(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			payload, err := json.Marshal(jobs.WeeklyReportPayload{ChatID: u.ChatID})
			if err != nil {
				return err
			}
			task := asynq.NewTask(jobs.TaskWeeklyReport, payload)
			if _, err := client.EnqueueContext(ctx, task); err != nil {
				logger.Error().Err(err).Int64("chat_id", u.ChatID).Msg("enqueue weekly report")
			}
		}
		logger.Info().Int("count", len(users)).Msg("weekly reports fanned out")
		return nil
	})

	mux.HandleFunc(jobs.TaskWeeklyReport, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.WeeklyReportPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			logger.Error().Err(err).Msg("bad report payload, dropping")
			return nil
		}
		report, err := coach.WeeklyReport(ctx, p.ChatID, time.Now().UTC())
		if err != nil {
			return err
		}
		return notifier.Send(ctx, p.ChatID, report)
	})

	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 1m", asynq.NewTask(jobs.TaskReminderTick, nil)); err != nil {
		logger.Fatal().Err(err).Msg("register reminder tick")
	}
	// Sunday evening.
	if _, err := scheduler.Register("0 18 * * 0", asynq.NewTask(jobs.TaskWeeklyReportFanout, nil)); err != nil {
		logger.Fatal().Err(err).Msg("register weekly report")
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Fatal().Err(err).Msg("scheduler stopped")
		}
	}()

	logger.Info().Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}
