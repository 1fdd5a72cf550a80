package printing

// PaperSize is the paper a receipt is laid out for
type PaperSize string

const (
	PaperSizeA5          PaperSize = "A5"
	PaperSizeReceipt58MM PaperSize = "RECEIPT_58MM"
	PaperSizeReceipt80MM PaperSize = "RECEIPT_80MM"
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeA5, PaperSizeReceipt58MM, PaperSizeReceipt80MM:
		return true
	}
	return false
}

// Dimensions returns the paper dimensions in millimeters (width, height).
// Receipt rolls have no fixed height and report 0.
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeReceipt58MM:
		return 58, 0
	case PaperSizeReceipt80MM:
		return 80, 0
	default:
		return 148, 210
	}
}

// IsReceipt returns true if this is a receipt roll
func (p PaperSize) IsReceipt() bool {
	return p == PaperSizeReceipt58MM || p == PaperSizeReceipt80MM
}

// Margins represents the page margins in millimeters
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// MarginsFor returns minimal margins for receipt rolls and 10mm otherwise
func MarginsFor(p PaperSize) Margins {
	if p.IsReceipt() {
		return Margins{Top: 2, Right: 2, Bottom: 2, Left: 2}
	}
	return Margins{Top: 10, Right: 10, Bottom: 10, Left: 10}
}
