package session

// The driver operates on a narrow page surface rather than on playwright
// directly; these methods make *Session that surface. Each acts on the
// first match so selectors that legitimately match several nodes (the
// wizard's Next buttons) behave like the original tool's element lookup.

// Count reports how many elements currently match the selector.
func (s *Session) Count(selector string) (int, error) {
	return s.page.Locator(selector).Count()
}

// IsVisible reports whether the first match is visible.
func (s *Session) IsVisible(selector string) (bool, error) {
	return s.page.Locator(selector).First().IsVisible()
}

// IsEnabled reports whether the first match is enabled.
func (s *Session) IsEnabled(selector string) (bool, error) {
	return s.page.Locator(selector).First().IsEnabled()
}

// Click clicks the first match.
func (s *Session) Click(selector string) error {
	return s.page.Locator(selector).First().Click()
}

// Fill replaces the first match's value.
func (s *Session) Fill(selector, value string) error {
	return s.page.Locator(selector).First().Fill(value)
}

// InputValue reads the first match's current value.
func (s *Session) InputValue(selector string) (string, error) {
	return s.page.Locator(selector).First().InputValue()
}

// IsChecked reports whether the first match is checked.
func (s *Session) IsChecked(selector string) (bool, error) {
	return s.page.Locator(selector).First().IsChecked()
}

// Reset navigates back to the course assignments page, the starting
// point for every creation plan. Creating an assignment leaves the page
// on the new assignment's editor, so the driver calls this between
// plans and after failures.
func (s *Session) Reset() error {
	return s.gotoAssignments(s.timeout)
}

// URL returns the page's current address.
func (s *Session) URL() string {
	return s.page.URL()
}
