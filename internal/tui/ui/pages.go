package ui

import "github.com/rivo/tview"

// Pages is a back stack of route paths over tview.Pages. Several paths can
// share one page (e.g. every "detail/{id}"); pageOf maps a path to its page.
type Pages struct {
	*tview.Pages
	stack    []string
	pageOf   func(path string) string
	onChange func(stack []string)
}

// NewPages creates a back stack. pageOf maps a path to its page name.
func NewPages(pageOf func(path string) string) *Pages {
	return &Pages{
		Pages:  tview.NewPages(),
		pageOf: pageOf,
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push shows path on top of the stack.
func (p *Pages) Push(path string) {
	p.stack = append(p.stack, path)
	p.show()
}

// Replace swaps the top of the stack for path.
func (p *Pages) Replace(path string) {
	if len(p.stack) == 0 {
		p.Push(path)
		return
	}
	p.stack[len(p.stack)-1] = path
	p.show()
}

// Pop removes the top path and shows the previous one. The root is never
// popped; Pop returns "" in that case.
func (p *Pages) Pop() string {
	if len(p.stack) < 2 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.show()
	return top
}

// Current returns the path on top of the stack.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	s := make([]string, len(p.stack))
	copy(s, p.stack)
	return s
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only path.
func (p *Pages) Reset(path string) {
	p.stack = []string{path}
	p.show()
}

func (p *Pages) show() {
	if name := p.pageOf(p.Current()); p.HasPage(name) {
		p.SwitchToPage(name)
	}
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
