package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	Dark              bool
	BgColor           tcell.Color
	FgColor           tcell.Color
	MutedColor        tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	TabActiveFg       tcell.Color
	TabActiveBg       tcell.Color
	TabInactiveFg     tcell.Color
	TabInactiveBg     tcell.Color
	MenuKeyColor      tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	BarColor          tcell.Color
	MarkedDayColor    tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
}

// DarkTheme is the default palette.
func DarkTheme() *Theme {
	return &Theme{
		Dark:              true,
		BgColor:           tcell.ColorBlack,
		FgColor:           tcell.ColorWhiteSmoke,
		MutedColor:        tcell.ColorGray,
		BorderColor:       tcell.ColorMediumPurple,
		BorderFocusColor:  tcell.ColorPlum,
		TableHeaderFg:     tcell.ColorWhite,
		TableHeaderBg:     tcell.ColorBlack,
		TableCursorFg:     tcell.ColorBlack,
		TableCursorBg:     tcell.ColorPlum,
		TabActiveFg:       tcell.ColorBlack,
		TabActiveBg:       tcell.ColorPlum,
		TabInactiveFg:     tcell.ColorWhiteSmoke,
		TabInactiveBg:     tcell.ColorDarkSlateGray,
		MenuKeyColor:      tcell.ColorMediumPurple,
		TitleColor:        tcell.ColorPlum,
		CounterColor:      tcell.ColorPapayaWhip,
		BarColor:          tcell.ColorMediumPurple,
		MarkedDayColor:    tcell.ColorGold,
		FlashInfoColor:    tcell.ColorNavajoWhite,
		FlashWarnColor:    tcell.ColorOrange,
		FlashErrColor:     tcell.ColorOrangeRed,
		PromptBorderColor: tcell.ColorMediumPurple,
	}
}

// LightTheme is used when dark mode is switched off.
func LightTheme() *Theme {
	return &Theme{
		BgColor:           tcell.ColorWhite,
		FgColor:           tcell.ColorBlack,
		MutedColor:        tcell.ColorDimGray,
		BorderColor:       tcell.ColorRebeccaPurple,
		BorderFocusColor:  tcell.ColorPurple,
		TableHeaderFg:     tcell.ColorBlack,
		TableHeaderBg:     tcell.ColorWhite,
		TableCursorFg:     tcell.ColorWhite,
		TableCursorBg:     tcell.ColorRebeccaPurple,
		TabActiveFg:       tcell.ColorWhite,
		TabActiveBg:       tcell.ColorRebeccaPurple,
		TabInactiveFg:     tcell.ColorBlack,
		TabInactiveBg:     tcell.ColorLavender,
		MenuKeyColor:      tcell.ColorRebeccaPurple,
		TitleColor:        tcell.ColorPurple,
		CounterColor:      tcell.ColorSaddleBrown,
		BarColor:          tcell.ColorRebeccaPurple,
		MarkedDayColor:    tcell.ColorDarkOrange,
		FlashInfoColor:    tcell.ColorNavy,
		FlashWarnColor:    tcell.ColorDarkOrange,
		FlashErrColor:     tcell.ColorRed,
		PromptBorderColor: tcell.ColorRebeccaPurple,
	}
}

// ThemeFor picks the palette for the dark-mode preference. Unset follows
// the terminal default, which is dark.
func ThemeFor(dark *bool) *Theme {
	if dark != nil && !*dark {
		return LightTheme()
	}
	return DarkTheme()
}
