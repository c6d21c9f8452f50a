package risk

import "github.com/tracker-tv/phi-guard/models"

const (
	DefaultThreshold = 30
	MaxScore         = 100
)

// Weight returns the score contribution of one finding of category c.
// Every weight is positive, which keeps Score monotonic.
func Weight(c models.Category) int {
	switch c {
	case models.CategoryPHILogging:
		return 40
	case models.CategorySensitiveFunction:
		return 35
	case models.CategoryStaticAnalysis:
		return 30
	case models.CategoryUnsafeBlock:
		return 20
	case models.CategoryHardcodedSecret, models.CategoryOther:
		return 10
	}
	return 10
}

// Score sums the weights of findings, clamped to [0, MaxScore].
func Score(findings []models.Finding) int {
	score := 0
	for _, f := range findings {
		score += Weight(f.Category)
		if score >= MaxScore {
			return MaxScore
		}
	}
	return score
}

type Aggregator struct {
	threshold int
}

func NewAggregator(threshold int) *Aggregator {
	return &Aggregator{threshold: threshold}
}

func (a *Aggregator) Threshold() int {
	return a.threshold
}

// Aggregate computes the verdict. A run is a VIOLATION when the score is
// strictly above the threshold or when any finding is CRITICAL.
func (a *Aggregator) Aggregate(findings []models.Finding) models.AuditResult {
	score := Score(findings)

	status := models.StatusClean
	if score > a.threshold || hasCritical(findings) {
		status = models.StatusViolation
	}

	out := make([]models.Finding, len(findings))
	copy(out, findings)

	return models.AuditResult{
		Status:    status,
		RiskScore: score,
		Findings:  out,
	}
}

func hasCritical(findings []models.Finding) bool {
	for _, f := range findings {
		if f.Severity == models.SeverityCritical {
			return true
		}
	}
	return false
}
