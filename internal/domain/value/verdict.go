package value

import "fmt"

// Verdict бинарное решение модели.
type Verdict string

const (
	VerdictChurn   Verdict = "Churn"
	VerdictNoChurn Verdict = "No Churn"
)

const churnThreshold = 0.5

func VerdictFromProbability(p float64) Verdict {
	if p > churnThreshold {
		return VerdictChurn
	}

	return VerdictNoChurn
}

func ParseVerdict(s string) (Verdict, error) {
	switch v := Verdict(s); v {
	case VerdictChurn, VerdictNoChurn:
		return v, nil
	default:
		return "", fmt.Errorf("invalid verdict: %q", s)
	}
}

func (v Verdict) String() string {
	return string(v)
}
