package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pvmelo/focuserp/internal/api"
	"github.com/pvmelo/focuserp/internal/holidays"
	"github.com/pvmelo/focuserp/internal/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			tasks := &service.TaskService{Store: rt.store}
			finance := &service.FinanceService{Store: rt.store}

			if rt.cfg.Reminders.Enabled {
				interval, err := time.ParseDuration(rt.cfg.Reminders.Interval)
				if err != nil {
					return fmt.Errorf("reminders.interval: %w", err)
				}
				reminders := &service.ReminderService{
					Store:    rt.store,
					Notifier: service.LogNotifier{Log: rt.log},
				}
				sched := service.NewScheduler(time.Local)
				if _, err := sched.ScheduleInterval(interval, func() {
					if _, err := reminders.Sweep(time.Now().UTC()); err != nil {
						rt.log.Warn("alarm sweep failed", "error", err)
					}
				}); err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
			}

			srv := &api.Server{
				Store:    rt.store,
				Tasks:    tasks,
				Finance:  finance,
				Ingestor: rt.newIngestor(),
				Holidays: holidays.NewClient(),
				Log:      rt.log,
			}

			rt.log.Info("listening", "addr", rt.cfg.Server.Addr, "store", rt.store.Path())
			return http.ListenAndServe(rt.cfg.Server.Addr, api.NewRouter(srv))
		},
	}
}
