package views

import (
	"fmt"

	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// OnboardingStep is a screen of the first-run wizard.
type OnboardingStep int

const (
	StepWelcome OnboardingStep = iota
	StepAskName
	StepHello
	StepCTA
)

type stepCopy struct {
	heading string
	body    string
	button  string
}

var steps = map[OnboardingStep]stepCopy{
	StepWelcome: {"Welcome to Minda", "Your personal offline journal.", "Get Started"},
	StepAskName: {"What's your name?", "", "Continue"},
	StepHello:   {"Hi, %s!", "Minda keeps your thoughts safe on this device.", "Next"},
	StepCTA:     {"You're all set!", "", "Start Journaling"},
}

// Onboarding renders the wizard one step at a time.
type Onboarding struct {
	*tview.Flex
	theme  *ui.Theme
	logo   *ui.Logo
	text   *tview.TextView
	form   *tview.Form
	step   OnboardingStep
	onNext func(step OnboardingStep, input string)
}

// NewOnboarding creates the wizard screen.
func NewOnboarding(theme *ui.Theme) *Onboarding {
	o := &Onboarding{
		theme: theme,
		logo:  ui.NewLogo(theme),
		text:  tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter),
		form:  tview.NewForm(),
	}
	o.form.SetButtonsAlign(tview.AlignCenter)

	column := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(o.logo, 5, 0, false).
		AddItem(o.text, 3, 0, false).
		AddItem(o.form, 5, 0, true).
		AddItem(nil, 0, 1, false)
	o.Flex = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(column, 50, 0, true).
		AddItem(nil, 0, 1, false)
	o.Restyle()
	return o
}

// Name implements Component.
func (o *Onboarding) Name() string { return "Welcome" }

// Hints implements Component.
func (o *Onboarding) Hints() []ui.MenuHint {
	return []ui.MenuHint{{Key: "Enter", Description: "Continue"}}
}

// Restyle reapplies the theme colors.
func (o *Onboarding) Restyle() {
	o.SetBackgroundColor(o.theme.BgColor)
	o.logo.Render()
	o.text.SetBackgroundColor(o.theme.BgColor)
	o.text.SetTextColor(o.theme.FgColor)
	o.form.SetBackgroundColor(o.theme.BgColor)
	o.form.SetFieldBackgroundColor(o.theme.TabInactiveBg)
	o.form.SetFieldTextColor(o.theme.FgColor)
	o.form.SetButtonBackgroundColor(o.theme.TabActiveBg)
	o.form.SetButtonTextColor(o.theme.TabActiveFg)
}

// SetOnNext sets the callback for the step's button. input carries the
// name typed on the ask-name step.
func (o *Onboarding) SetOnNext(fn func(step OnboardingStep, input string)) { o.onNext = fn }

// Form returns the step's form, which holds focus.
func (o *Onboarding) Form() *tview.Form { return o.form }

// Show renders step. name fills the greeting and the name field.
func (o *Onboarding) Show(step OnboardingStep, name string) {
	o.step = step
	c := steps[step]

	heading := c.heading
	if step == StepHello {
		heading = fmt.Sprintf(heading, tview.Escape(name))
	}
	o.text.Clear()
	_, _ = fmt.Fprintf(o.text, "%s[::b]%s[-:-:-]\n\n%s",
		ui.ColorTag(o.theme.TitleColor), heading, c.body)

	o.form.Clear(true)
	if step == StepAskName {
		o.form.AddInputField("Name", name, 30, nil, nil)
	}
	o.form.AddButton(c.button, o.next)
	o.form.SetFocus(0)
}

func (o *Onboarding) next() {
	if o.onNext == nil {
		return
	}
	input := ""
	if field, ok := o.form.GetFormItemByLabel("Name").(*tview.InputField); ok {
		input = field.GetText()
	}
	o.onNext(o.step, input)
}
