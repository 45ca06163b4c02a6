package value

import "fmt"

// RiskLevel грубая оценка риска оттока.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "Low"}    //nolint:gochecknoglobals
	RiskLevelMedium = RiskLevel{value: "Medium"} //nolint:gochecknoglobals
	RiskLevelHigh   = RiskLevel{value: "High"}   //nolint:gochecknoglobals
)

const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// RiskLevelFromProbability применяет строгие пороги 0.7 и 0.4.
func RiskLevelFromProbability(p float64) RiskLevel {
	switch {
	case p > highRiskThreshold:
		return RiskLevelHigh
	case p > mediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case RiskLevelLow.value:
		return RiskLevelLow, nil
	case RiskLevelMedium.value:
		return RiskLevelMedium, nil
	case RiskLevelHigh.value:
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

func (r RiskLevel) String() string {
	return r.value
}

func (r RiskLevel) IsZero() bool {
	return r.value == ""
}
