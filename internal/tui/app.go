package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/keys"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/matheus3301/minda/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	statusInterval = 5 * time.Second
	helpPath       = "help"
	modalPage      = "modal"
)

// App is the main TUI application shell.
type App struct {
	app       *tview.Application
	theme     *ui.Theme
	layout    *tview.Flex
	pages     *ui.Pages
	tabBar    *ui.TabBar
	menu      *ui.Menu
	flash     *ui.FlashModel
	flashBar  *ui.FlashBar
	prompt    *ui.Prompt
	statusBar *views.StatusBar
	registry  *keys.Registry
	vm        *model.ViewModel
	logger    *zap.Logger

	home       *views.Home
	calendar   *views.Calendar
	insights   *views.Insights
	settings   *views.Settings
	onboarding *views.Onboarding
	form       *views.EntryForm
	detail     *views.Detail
	help       *views.HelpView

	dest       Destination
	calDay     insights.Date
	started    bool
	onboarded  bool
	dark       *bool
	modalOpen  bool
	promptOpen bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI for one profile's daemon.
func NewApp(b model.Backend, profileName string, loc *time.Location, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DarkTheme()

	a := &App{
		app:        tview.NewApplication(),
		theme:      theme,
		tabBar:     ui.NewTabBar(theme),
		menu:       ui.NewMenu(theme),
		flash:      ui.NewFlashModel(),
		flashBar:   ui.NewFlashBar(theme),
		prompt:     ui.NewPrompt(theme),
		statusBar:  views.NewStatusBar(theme),
		registry:   keys.NewRegistry(),
		vm:         model.NewViewModel(b, loc),
		logger:     logger,
		home:       views.NewHome(theme),
		calendar:   views.NewCalendar(theme),
		insights:   views.NewInsights(theme),
		settings:   views.NewSettings(theme),
		onboarding: views.NewOnboarding(theme),
		form:       views.NewEntryForm(theme),
		detail:     views.NewDetail(theme),
		help:       views.NewHelpView(theme),
		ctx:        ctx,
		cancel:     cancel,
	}
	a.pages = ui.NewPages(pageOf)
	a.calDay = a.vm.Today()

	a.statusBar.SetProfile(profileName)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

// pageOf maps a route path to the page that renders it.
func pageOf(path string) string {
	if path == helpPath {
		return helpPath
	}
	d, err := Parse(path)
	if err != nil {
		return ""
	}
	return pageName(d.Route)
}

func pageName(r Route) string {
	switch {
	case r == RouteNew || r == RouteEdit:
		return "form"
	case r == RouteDetail:
		return "detail"
	case r.IsOnboarding():
		return "onboarding"
	default:
		return string(r)
	}
}

func (a *App) component() ui.Component {
	if a.pages.Current() == helpPath {
		return a.help
	}
	switch pageName(a.dest.Route) {
	case "home":
		return a.home
	case "calendar":
		return a.calendar
	case "insights":
		return a.insights
	case "settings":
		return a.settings
	case "onboarding":
		return a.onboarding
	case "form":
		return a.form
	default:
		return a.detail
	}
}

func (a *App) view() string {
	if a.pages.Current() == helpPath {
		return helpPath
	}
	return pageName(a.dest.Route)
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyEscape, Label: "Esc", Description: "Back",
		Handler: a.back,
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: ':', Description: "Command", Visible: true,
		Handler: a.showPrompt,
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: '?', Description: "Help", Visible: true,
		Handler: func() {
			if a.pages.Current() != helpPath {
				a.pages.Push(helpPath)
			}
		},
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'q', Description: "Quit", Visible: true,
		Handler: a.Stop,
	})
	for i, tab := range Tabs() {
		route := tab.Route
		a.registry.AddGlobal(&keys.Action{
			Key: tcell.KeyRune, Rune: rune('1' + i),
			Handler: func() { a.Navigate(To(route)) },
		})
	}

	newEntry := &keys.Action{Key: tcell.KeyRune, Rune: 'n', Handler: func() { a.Navigate(To(RouteNew)) }}
	a.registry.AddView("home", newEntry)
	a.registry.AddView("calendar", newEntry)
	a.registry.AddView("home", &keys.Action{
		Key: tcell.KeyRune, Rune: '/',
		Handler: func() { a.app.SetFocus(a.home.Search()) },
	})

	a.registry.AddView("detail", &keys.Action{
		Key: tcell.KeyRune, Rune: 'e',
		Handler: func() { a.Navigate(Edit(a.dest.EntryID)) },
	})
	a.registry.AddView("detail", &keys.Action{
		Key: tcell.KeyRune, Rune: 'd',
		Handler: a.confirmDelete,
	})

	a.registry.AddView("calendar", &keys.Action{
		Key: tcell.KeyRune, Rune: '[',
		Handler: func() { a.shiftMonth(-1) },
	})
	a.registry.AddView("calendar", &keys.Action{
		Key: tcell.KeyRune, Rune: ']',
		Handler: func() { a.shiftMonth(1) },
	})
	a.registry.AddView("calendar", &keys.Action{
		Key: tcell.KeyRune, Rune: 't',
		Handler: func() {
			a.calDay = a.vm.Today()
			a.render()
		},
	})
	a.registry.AddView("calendar", &keys.Action{
		Key: tcell.KeyTab,
		Handler: func() {
			if a.app.GetFocus() == a.calendar.Grid() {
				a.app.SetFocus(a.calendar.List())
			} else {
				a.app.SetFocus(a.calendar.Grid())
			}
		},
	})

	a.registry.AddView("settings", &keys.Action{
		Key: tcell.KeyRune, Rune: 'u',
		Handler: func() { a.app.SetFocus(a.settings.NameInput()) },
	})
}

func (a *App) setupCallbacks() {
	a.pages.SetOnChange(func([]string) { a.enter() })

	a.home.SetOnQuery(func(string) { a.render() })
	a.home.SetOnOpen(func(id int64) { a.Navigate(Detail(id)) })
	a.home.SetDoneSearching(func() { a.app.SetFocus(a.home.Table()) })

	a.calendar.SetOnOpen(func(id int64) { a.Navigate(Detail(id)) })
	a.calendar.SetOnDay(func(day int) {
		a.calDay = insights.Date{Year: a.calDay.Year, Month: a.calDay.Month, Day: day}
		a.render()
	})

	a.form.SetOnSave(a.save)
	a.form.SetOnCancel(a.back)

	a.onboarding.SetOnNext(a.onboardingNext)

	a.settings.SetHandlers(
		func(name string) {
			a.run("save name", func(ctx context.Context) error { return a.vm.SetUserName(ctx, name) }, func() {
				a.flash.Info("Name saved")
			})
		},
		func() {
			a.run("change dark mode", a.vm.ToggleDarkMode, nil)
		},
		a.confirmReset,
		func() { a.app.SetFocus(a.settings.List()) },
	)

	a.prompt.SetOnSubmit(func(text string) {
		a.hidePrompt()
		a.command(text)
	})
	a.prompt.SetOnCancel(a.hidePrompt)
}

func (a *App) setupLayout() {
	a.pages.AddPage("home", a.home, true, false)
	a.pages.AddPage("calendar", a.calendar, true, false)
	a.pages.AddPage("insights", a.insights, true, false)
	a.pages.AddPage("settings", a.settings, true, false)
	a.pages.AddPage("onboarding", a.onboarding, true, false)
	a.pages.AddPage("form", a.form, true, false)
	a.pages.AddPage("detail", a.detail, true, false)
	a.pages.AddPage(helpPath, a.help, true, false)

	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.tabBar, 0, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)
	a.layout.SetBackgroundColor(a.theme.BgColor)

	a.app.SetRoot(a.layout, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.modalOpen || a.promptOpen {
			return event
		}

		// Let text input widgets handle all keys normally.
		switch a.app.GetFocus().(type) {
		case *tview.InputField, *tview.TextArea, *tview.DropDown, *tview.Button:
			return event
		}
		switch a.view() {
		case "form":
			return event
		case "onboarding":
			if event.Key() == tcell.KeyEscape {
				a.back()
				return nil
			}
			return event
		}

		if a.registry.HandleEvent(a.view(), event) {
			return nil
		}
		return event
	})
}

// Navigate opens d. Tabs and the welcome screen reset the back stack;
// everything else is pushed on top of it.
func (a *App) Navigate(d Destination) {
	if !a.onboarded && !d.Route.IsOnboarding() {
		a.flash.Warn("Finish the welcome steps first")
		return
	}
	if d.Route.IsTab() || d.Route == RouteWelcome {
		a.pages.Reset(d.Path())
		return
	}
	a.pages.Push(d.Path())
}

func (a *App) back() {
	if a.pages.Pop() == "" && a.dest.Route != RouteHome && a.onboarded {
		a.pages.Reset(To(RouteHome).Path())
	}
}

// enter prepares the screen on top of the back stack.
func (a *App) enter() {
	current := a.pages.Current()
	if current == helpPath {
		a.app.SetFocus(a.help)
		a.updateChrome()
		return
	}
	d, err := Parse(current)
	if err != nil {
		a.logger.Warn("unroutable path", zap.String("path", current), zap.Error(err))
		return
	}
	a.dest = d

	switch a.dest.Route {
	case RouteNew:
		a.form.Load(store.Entry{})
		a.app.SetFocus(a.form)
	case RouteEdit:
		state, e, err := a.vm.Entry(a.dest.EntryID)
		if state != model.Ready {
			a.flash.Err("open entry", errOr(err, "entries are still loading"))
			a.back()
			return
		}
		a.form.Load(e)
		a.app.SetFocus(a.form)
	case RouteWelcome, RouteAskName, RouteHello, RouteCTA:
		_, p, _ := a.vm.Preferences()
		name := ""
		if p.UserName != nil {
			name = *p.UserName
		}
		a.onboarding.Show(onboardingStep(a.dest.Route), name)
		a.app.SetFocus(a.onboarding.Form())
	case RouteHome:
		a.app.SetFocus(a.home.Table())
	case RouteCalendar:
		a.app.SetFocus(a.calendar.Grid())
	case RouteSettings:
		a.app.SetFocus(a.settings.List())
	default:
		a.app.SetFocus(a.detail)
	}
	a.updateChrome()
	a.render()
}

func onboardingStep(r Route) views.OnboardingStep {
	switch r {
	case RouteAskName:
		return views.StepAskName
	case RouteHello:
		return views.StepHello
	case RouteCTA:
		return views.StepCTA
	default:
		return views.StepWelcome
	}
}

func (a *App) tabBarShown() bool {
	return a.dest.Route.IsTab() && a.pages.Current() != helpPath
}

func (a *App) updateChrome() {
	tabHeight := 0
	if a.tabBarShown() {
		tabHeight = 1
	}
	a.layout.ResizeItem(a.tabBar, tabHeight, 0)

	tabs := Tabs()
	names := make([]string, len(tabs))
	active := -1
	for i, t := range tabs {
		names[i] = t.Title
		if t.Route == a.dest.Route {
			active = i
		}
	}
	a.tabBar.Update(names, active)
	a.menu.Update(a.component().Hints(), a.registry.Hints(a.view()))
}

// render redraws the current screen from the view model.
func (a *App) render() {
	a.applyPreferences()

	loc := a.vm.Location()
	switch a.dest.Route {
	case RouteHome:
		state, entries, err := a.vm.Search(a.home.Query())
		_, p, _ := a.vm.Preferences()
		a.home.Update(state, entries, err, p.UserName, loc)
	case RouteCalendar:
		state, view, err := a.vm.Calendar(a.calDay)
		a.calendar.Update(state, view, err, loc)
	case RouteInsights:
		state, view, err := a.vm.Insights()
		a.insights.Update(state, view, err)
	case RouteSettings:
		state, p, err := a.vm.Preferences()
		a.settings.Update(state, p, err)
	case RouteDetail:
		state, e, err := a.vm.Entry(a.dest.EntryID)
		a.detail.Update(state, e, err, loc)
	}
}

// applyPreferences picks the start route once preferences arrive, follows
// onboarding resets and switches the theme.
func (a *App) applyPreferences() {
	state, p, err := a.vm.Preferences()
	switch state {
	case model.Loading:
		return
	case model.Failed:
		if !a.started {
			a.started = true
			a.onboarded = true
			a.flash.Err("load preferences", err)
			a.pages.Reset(To(RouteHome).Path())
		}
		return
	}

	if !darkEqual(a.dark, p.DarkMode) || !a.started {
		a.dark = p.DarkMode
		*a.theme = *ui.ThemeFor(p.DarkMode)
		a.restyle()
	}

	switch {
	case !a.started:
		a.started = true
		a.onboarded = p.OnboardingCompleted
		a.pages.Reset(To(StartRoute(p.OnboardingCompleted)).Path())
	case a.onboarded && !p.OnboardingCompleted:
		a.onboarded = false
		a.pages.Reset(To(RouteWelcome).Path())
	case !a.onboarded && p.OnboardingCompleted:
		a.onboarded = true
		a.pages.Reset(To(RouteHome).Path())
	}
}

func errOr(err error, msg string) error {
	if err != nil {
		return err
	}
	return errors.New(msg)
}

func darkEqual(x, y *bool) bool {
	if x == nil || y == nil {
		return x == y
	}
	return *x == *y
}

func (a *App) restyle() {
	a.layout.SetBackgroundColor(a.theme.BgColor)
	a.home.Restyle()
	a.calendar.Restyle()
	a.insights.Restyle()
	a.settings.Restyle()
	a.onboarding.Restyle()
	a.form.Restyle()
	a.detail.Restyle()
	a.help.Restyle()
	a.statusBar.Restyle()
	a.prompt.Restyle()
	a.flashBar.Update(a.flash.GetMessage())
	a.updateChrome()
}

func (a *App) shiftMonth(delta int) {
	t := time.Date(a.calDay.Year, a.calDay.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	a.calDay = insights.DateOf(t)
	a.render()
}

func (a *App) onboardingNext(step views.OnboardingStep, input string) {
	switch step {
	case views.StepAskName:
		a.run("save name", func(ctx context.Context) error { return a.vm.SetUserName(ctx, input) }, func() {
			a.pages.Push(To(NextOnboarding(a.dest.Route)).Path())
		})
	case views.StepCTA:
		a.run("finish onboarding", a.vm.CompleteOnboarding, nil)
	default:
		a.pages.Push(To(NextOnboarding(a.dest.Route)).Path())
	}
}

func (a *App) save(e store.Entry) {
	go func() {
		id, err := a.vm.Save(a.ctx, e)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.flash.Err("save entry", err)
				return
			}
			a.flash.Info("Entry saved")
			if e.ID == 0 {
				a.pages.Replace(Detail(id).Path())
				return
			}
			a.back()
		})
	}()
}

func (a *App) confirmDelete() {
	id := a.dest.EntryID
	a.confirm("Delete this entry?", "Yes, Delete", func() {
		a.run("delete entry", func(ctx context.Context) error { return a.vm.Remove(ctx, id) }, func() {
			a.flash.Info("Entry deleted")
			a.back()
		})
	})
}

func (a *App) confirmReset() {
	a.confirm("Are you sure you want to reset the onboarding status? This will take you back to the Welcome screen.",
		"Yes, Reset", func() {
			a.run("reset application", a.vm.ResetOnboarding, nil)
		})
}

// confirm shows a modal with a confirm and a Cancel button.
func (a *App) confirm(text, yes string, onYes func()) {
	focus := a.app.GetFocus()
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{yes, "Cancel"}).
		SetBackgroundColor(a.theme.TabInactiveBg).
		SetTextColor(a.theme.FgColor).
		SetButtonBackgroundColor(a.theme.TabActiveBg).
		SetButtonTextColor(a.theme.TabActiveFg)
	modal.SetDoneFunc(func(index int, _ string) {
		a.pages.RemovePage(modalPage)
		a.modalOpen = false
		a.app.SetFocus(focus)
		if index == 0 {
			onYes()
		}
	})
	a.modalOpen = true
	a.pages.AddPage(modalPage, modal, false, true)
	a.app.SetFocus(modal)
}

// run performs a daemon call off the UI goroutine, then flashes the error
// or runs done on the UI goroutine.
func (a *App) run(action string, call func(ctx context.Context) error, done func()) {
	go func() {
		err := call(a.ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.logger.Warn("action failed", zap.String("action", action), zap.Error(err))
				a.flash.Err(action, err)
				return
			}
			if done != nil {
				done()
			}
		})
	}()
}

func (a *App) showPrompt() {
	a.promptOpen = true
	a.layout.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.promptOpen = false
	a.layout.ResizeItem(a.prompt, 0, 0)
	a.enter()
}

func (a *App) command(text string) {
	cmd := ParseCommand(text)
	switch {
	case cmd.IsQuit():
		a.Stop()
		return
	case cmd.IsHelp():
		a.pages.Push(helpPath)
		return
	}
	d, err := cmd.Destination()
	if err != nil {
		a.flash.Warn(err.Error())
		return
	}
	a.Navigate(d)
}

// Run starts the TUI application.
func (a *App) Run() error {
	a.vm.Start(a.ctx)
	a.pages.Reset(To(RouteHome).Path())

	go a.refreshLoop()
	go a.flashLoop()
	go a.statusLoop()

	return a.app.Run()
}

func (a *App) refreshLoop() {
	for {
		select {
		case <-a.vm.RefreshCh():
			a.app.QueueUpdateDraw(a.render)
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) flashLoop() {
	for {
		select {
		case msg := <-a.flash.Watch():
			a.app.QueueUpdateDraw(func() { a.flashBar.Update(&msg) })
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) statusLoop() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		st, err := a.vm.Status(a.ctx)
		if a.ctx.Err() != nil {
			return
		}
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.statusBar.SetStatus("OFFLINE", -1)
			} else {
				a.statusBar.SetStatus(st.Status, st.EntryCount)
			}
			a.settings.UpdateStatus(st, err)
			a.flashBar.Update(a.flash.GetMessage())
		})
		select {
		case <-ticker.C:
		case <-a.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
