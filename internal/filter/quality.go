package filter

import (
	"strings"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/apperr"
)

// Quality is the status-based result filter. Wire codes are "0".."3".
type Quality int

const (
	QualityAll Quality = iota
	QualityNoRemakes
	QualityTrustedOnly
	QualityCompleteOnly
)

var qualityNames = [...]string{"all", "no-remakes", "trusted-only", "complete-only"}

func (q Quality) String() string {
	if q < QualityAll || q > QualityCompleteOnly {
		return "unknown"
	}
	return qualityNames[q]
}

// Code is the wire form of q.
func (q Quality) Code() string {
	return string(rune('0' + int(q)))
}

// ParseQuality accepts the wire codes and the names, case-insensitively.
func ParseQuality(s string) (Quality, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range qualityNames {
		q := Quality(i)
		if v == q.Code() || v == name {
			return q, nil
		}
	}
	return QualityAll, apperr.ErrInvalidQuality
}

// QualityFilter returns the predicate for q, nil for QualityAll.
func QualityFilter(q Quality) Expr {
	switch q {
	case QualityNoRemakes:
		return Is(FieldRemake, false)
	case QualityTrustedOnly:
		return Is(FieldTrusted, true)
	case QualityCompleteOnly:
		return Is(FieldComplete, true)
	default:
		return nil
	}
}
