package tui

// Dimensions holds the space left for the body between header and footer.
type Dimensions struct {
	// BodyWidth is the width of the list or dialog area.
	BodyWidth int
	// BodyHeight is the height of the list or dialog area.
	BodyHeight int
	// DialogWidth is the width a dialog should render at.
	DialogWidth int
}

// LayoutManager calculates body dimensions based on terminal size.
type LayoutManager struct {
	// totalWidth is the terminal width.
	totalWidth int
	// totalHeight is the terminal height.
	totalHeight int
	// headerHeight is the height reserved for the header.
	headerHeight int
	// footerHeight is the height reserved for the footer (default 1).
	footerHeight int
}

// NewLayoutManager creates a new LayoutManager with the given terminal dimensions.
func NewLayoutManager(width, height, headerHeight int) *LayoutManager {
	return &LayoutManager{
		totalWidth:   width,
		totalHeight:  height,
		headerHeight: headerHeight,
		footerHeight: 1,
	}
}

// SetSize updates the terminal dimensions.
func (l *LayoutManager) SetSize(width, height int) {
	l.totalWidth = width
	l.totalHeight = height
}

// Calculate returns the body dimensions for the current terminal size.
// Dialogs take 60% of the width, clamped to [40, 72] columns.
func (l *LayoutManager) Calculate() Dimensions {
	const (
		minBodyHeight  = 3
		minDialogWidth = 40
		maxDialogWidth = 72
	)

	bodyHeight := l.totalHeight - l.headerHeight - l.footerHeight
	if bodyHeight < minBodyHeight {
		bodyHeight = minBodyHeight
	}

	dialogWidth := int(float64(l.totalWidth) * 0.60)
	if dialogWidth < minDialogWidth {
		dialogWidth = minDialogWidth
	}
	if dialogWidth > maxDialogWidth {
		dialogWidth = maxDialogWidth
	}
	if l.totalWidth > 0 && dialogWidth > l.totalWidth {
		dialogWidth = l.totalWidth
	}

	return Dimensions{
		BodyWidth:   l.totalWidth,
		BodyHeight:  bodyHeight,
		DialogWidth: dialogWidth,
	}
}
