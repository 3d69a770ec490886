package sample

import "fmt"

// Label is a Reuters topic class. The set is small and fixed, so labels are
// represented by ordinal and can index arrays directly.
type Label int

const (
	Earn Label = iota
	Acq
	MoneyFx
	Grain
	Crude
	Other
)

// NumLabels is the number of distinct labels, Other included.
const NumLabels = 6

// Labels returns all labels in ordinal order.
func Labels() []Label {
	return []Label{Earn, Acq, MoneyFx, Grain, Crude, Other}
}

// String returns the label keyword as it appears in Reuters topic tags
// and in the dataset/model file formats.
func (l Label) String() string {
	switch l {
	case Earn:
		return "earn"
	case Acq:
		return "acq"
	case MoneyFx:
		return "money-fx"
	case Grain:
		return "grain"
	case Crude:
		return "crude"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// ParseLabel maps a Reuters topic keyword to its Label. Any keyword outside
// the five target classes maps to Other; an explicit "other" keyword is
// accepted for symmetry with String.
func ParseLabel(keyword string) Label {
	switch keyword {
	case "earn":
		return Earn
	case "acq":
		return Acq
	case "money-fx":
		return MoneyFx
	case "grain":
		return Grain
	case "crude":
		return Crude
	default:
		return Other
	}
}

// ParseKnownLabel is like ParseLabel but rejects keywords that are not one
// of the six label names. It is used when reading dataset and model files,
// where an unknown class name indicates a corrupt file rather than an
// uninteresting topic.
func ParseKnownLabel(keyword string) (Label, error) {
	for _, l := range Labels() {
		if l.String() == keyword {
			return l, nil
		}
	}
	return Other, fmt.Errorf("unknown class name %q", keyword)
}
