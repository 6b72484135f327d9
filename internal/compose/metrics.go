package compose

// Logical units. A terminal cell is 8 units wide and 16 units tall.
const (
	UnitsPerColumn = 8
	UnitsPerRow    = 16
	IconUnits      = 24 // Icon box edge

	DialogMaxUnits    = 320
	DialogMarginUnits = 40
)

// Metrics is the screen size content is composed for, in cells.
type Metrics struct {
	Width  int
	Height int
}

// DefaultMetrics is used when no screen size is known yet.
var DefaultMetrics = Metrics{Width: 80, Height: 24}

func (m Metrics) normalize() Metrics {
	if m.Width <= 0 || m.Height <= 0 {
		return DefaultMetrics
	}
	return m
}

// Columns converts logical units to whole columns.
func Columns(units int) int {
	return units / UnitsPerColumn
}

// IconColumns is the width reserved for the leading icon.
func IconColumns() int {
	return Columns(IconUnits)
}

// DialogWidth is min(screen - 40, 320) logical units, in columns.
func DialogWidth(screenColumns int) int {
	units := min(screenColumns*UnitsPerColumn-DialogMarginUnits, DialogMaxUnits)
	return max(Columns(units), minDialogWidth)
}

// BannerWidth is the width of banners and notifications.
func BannerWidth(screenColumns int) int {
	return max(min(screenColumns-4, maxBannerWidth), minBannerWidth)
}

const (
	minDialogWidth = 16
	minBannerWidth = 16
	maxBannerWidth = 64
	bodyMaxLines   = 2
	buttonGap      = 2
)
