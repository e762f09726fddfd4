package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/config"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/profile"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/client"
	"github.com/spf13/cobra"
)

const callTimeout = 10 * time.Second

// ctlClient is the part of client.Client the commands use.
type ctlClient interface {
	AddEntry(ctx context.Context, e store.Entry) (int64, error)
	EditEntry(ctx context.Context, e store.Entry) error
	RemoveEntry(ctx context.Context, id int64) error
	ListEntries(ctx context.Context) ([]store.Entry, error)
	GetEntry(ctx context.Context, id int64) (store.Entry, error)
	WatchEntries(ctx context.Context) (*client.EntryStream, error)
	Preferences(ctx context.Context) (prefs.Preferences, error)
	SetUserName(ctx context.Context, name string) error
	SetOnboardingCompleted(ctx context.Context, done bool) error
	SetDarkMode(ctx context.Context, dark bool) error
	ClearDarkMode(ctx context.Context) error
	Status(ctx context.Context) (api.DaemonStatus, error)
	Close() error
}

// Dialer opens a client for a daemon socket.
type Dialer func(socketPath string) (ctlClient, error)

func dialClient(socketPath string) (ctlClient, error) {
	c, err := client.New(socketPath)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type rootOptions struct {
	Profile string
	JSON    bool

	dial Dialer
	now  func() time.Time
}

type session struct {
	ctx    context.Context
	client ctlClient
	out    *printer
	json   bool
	now    time.Time
}

// New builds the mindactl command tree.
func New(dial Dialer) *cobra.Command {
	return newRoot(&rootOptions{dial: dial, now: time.Now})
}

func newRoot(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mindactl",
		Short:         "Control a running minda daemon.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&o.Profile, "profile", "", "profile name (overrides config default)")
	cmd.PersistentFlags().BoolVar(&o.JSON, "json", false, "output in JSON format")

	addCommands(cmd, o)
	return cmd
}

func addCommands(topLevel *cobra.Command, o *rootOptions) {
	addStatus(topLevel, o)
	addList(topLevel, o)
	addShow(topLevel, o)
	addAdd(topLevel, o)
	addEdit(topLevel, o)
	addRm(topLevel, o)
	addCalendar(topLevel, o)
	addInsights(topLevel, o)
	addPrefs(topLevel, o)
	addWatch(topLevel, o)
}

// run connects to the profile daemon and calls fn with a bounded context.
// Streaming commands pass timeout 0 to run until the command is cancelled.
func (o *rootOptions) run(cmd *cobra.Command, timeout time.Duration, fn func(s *session) error) error {
	name := profile.Resolve(o.Profile)
	if err := profile.ValidateName(name); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(profile.ConfigPath())
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	c, err := o.dial(profile.SocketPath(name))
	if err != nil {
		return fmt.Errorf("cannot connect to daemon for profile %q: %w", name, err)
	}
	defer func() { _ = c.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return fn(&session{
		ctx:    ctx,
		client: c,
		out:    newPrinter(cmd.OutOrStdout(), loc),
		json:   o.JSON,
		now:    o.now(),
	})
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}

// parseMonth reads YYYY-MM. An empty string selects the month of now.
func parseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

func addStatus(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				st, err := s.client.Status(s.ctx)
				if err != nil {
					return err
				}
				if s.json {
					return outputJSON(s.out.w, st)
				}
				s.out.Status(st)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, o *rootOptions) {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recent first",
		Example: `
mindactl list
mindactl list --search coffee
mindactl list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				entries, err := s.client.ListEntries(s.ctx)
				if err != nil {
					return err
				}
				entries = insights.Filter(entries, search)
				if s.json {
					return outputJSON(s.out.w, entries)
				}
				s.out.Entries(entries)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only entries whose title or content contains this text")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.run(cmd, callTimeout, func(s *session) error {
				e, err := s.client.GetEntry(s.ctx, id)
				if err != nil {
					return err
				}
				if s.json {
					return outputJSON(s.out.w, e)
				}
				s.out.Entry(e)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

type entryFlags struct {
	title   string
	content string
	mood    string
}

func (f *entryFlags) add(cmd *cobra.Command, defaultMood string) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&f.content, "content", "c", "", "entry body")
	cmd.Flags().StringVarP(&f.mood, "mood", "m", defaultMood, "mood emoji")
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	f := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a new entry",
		Example: `
mindactl add --title "Morning" --content "Slept well." --mood 😴
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				id, err := s.client.AddEntry(s.ctx, store.Entry{
					Title:     f.title,
					Content:   f.content,
					Mood:      f.mood,
					Timestamp: s.now.UnixMilli(),
				})
				if err != nil {
					return err
				}
				if s.json {
					return outputJSON(s.out.w, map[string]int64{"id": id})
				}
				s.out.Done("Added entry %d", id)
				return nil
			})
		},
	}
	f.add(cmd, insights.Moods[0])
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, o *rootOptions) {
	f := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, content or mood of an entry",
		Example: `
mindactl edit 3 --mood 🤩
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("content") && !flags.Changed("mood") {
				return errors.New("nothing to change: pass --title, --content or --mood")
			}
			return o.run(cmd, callTimeout, func(s *session) error {
				e, err := s.client.GetEntry(s.ctx, id)
				if err != nil {
					return err
				}
				if flags.Changed("title") {
					e.Title = f.title
				}
				if flags.Changed("content") {
					e.Content = f.content
				}
				if flags.Changed("mood") {
					e.Mood = f.mood
				}
				if err := s.client.EditEntry(s.ctx, e); err != nil {
					return err
				}
				if !s.json {
					s.out.Done("Updated entry %d", id)
				}
				return nil
			})
		},
	}
	f.add(cmd, "")
	topLevel.AddCommand(cmd)
}

func addRm(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.run(cmd, callTimeout, func(s *session) error {
				if err := s.client.RemoveEntry(s.ctx, id); err != nil {
					return err
				}
				if !s.json {
					s.out.Done("Deleted entry %d", id)
				}
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command, o *rootOptions) {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with the entries written on each day",
		Example: `
mindactl calendar
mindactl calendar --month 2026-03
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				year, m, err := parseMonth(month, s.now.In(s.out.loc))
				if err != nil {
					return err
				}
				entries, err := s.client.ListEntries(s.ctx)
				if err != nil {
					return err
				}
				groups := insights.GroupByDate(entries, s.out.loc)
				if s.json {
					return outputJSON(s.out.w, monthJSON(groups, year, m))
				}
				s.out.Calendar(insights.MonthGrid(groups, year, m), groups)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default current month)")
	topLevel.AddCommand(cmd)
}

type dayJSON struct {
	Date    string        `json:"date"`
	Entries []store.Entry `json:"entries"`
}

func monthJSON(groups map[insights.Date][]store.Entry, year int, month time.Month) []dayJSON {
	days := []dayJSON{}
	for _, d := range insights.Dates(groups) {
		if d.Year == year && d.Month == month {
			days = append(days, dayJSON{Date: d.String(), Entries: groups[d]})
		}
	}
	return days
}

type insightsJSON struct {
	Total         int            `json:"total"`
	LastSevenDays int            `json:"last_seven_days"`
	Moods         map[string]int `json:"moods"`
}

func addInsights(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show entry totals and the mood histogram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				entries, err := s.client.ListEntries(s.ctx)
				if err != nil {
					return err
				}
				summary := insights.Summarize(entries, s.now)
				counts := insights.MoodCounts(entries)
				if s.json {
					return outputJSON(s.out.w, insightsJSON{
						Total:         summary.Total,
						LastSevenDays: summary.LastSevenDays,
						Moods:         counts,
					})
				}
				s.out.Insights(summary, insights.Bars(counts))
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addPrefs(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				p, err := s.client.Preferences(s.ctx)
				if err != nil {
					return err
				}
				if s.json {
					return outputJSON(s.out.w, p)
				}
				s.out.Preferences(p)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-name <name>",
		Short: "Set the name used in greetings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				return s.client.SetUserName(s.ctx, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "dark-mode on|off|system",
		Short:     "Choose the theme",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"on", "off", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				switch args[0] {
				case "on":
					return s.client.SetDarkMode(s.ctx, true)
				case "off":
					return s.client.SetDarkMode(s.ctx, false)
				default:
					return s.client.ClearDarkMode(s.ctx)
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "onboarding on|off",
		Short:     "Mark onboarding as completed (on) or run it again (off)",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, callTimeout, func(s *session) error {
				return s.client.SetOnboardingCompleted(s.ctx, args[0] == "on")
			})
		},
	})

	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line for every change to the diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, 0, func(s *session) error {
				stream, err := s.client.WatchEntries(s.ctx)
				if err != nil {
					return err
				}
				for {
					env, err := stream.Recv()
					if errors.Is(err, io.EOF) || s.ctx.Err() != nil {
						return nil
					}
					if err != nil {
						return err
					}
					if s.json {
						if err := outputJSON(s.out.w, watchJSON(env)); err != nil {
							return err
						}
						continue
					}
					s.out.Snapshot(env)
				}
			})
		},
	}
	topLevel.AddCommand(cmd)
}

type snapshotJSON struct {
	EventID    string        `json:"event_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Entries    []store.Entry `json:"entries"`
}

func watchJSON(env api.WatchEnvelope) snapshotJSON {
	return snapshotJSON{EventID: env.EventID, OccurredAt: env.OccurredAt, Entries: env.Entries}
}
