package judging

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

const (
	MaxFeedbackLength = 2000
	MaxBatchSize      = 50
	// ExtremeFraction marks the bottom and top share of a range as extreme.
	ExtremeFraction = 0.1
	// DivergenceThreshold is the largest accepted gap, in points, between an
	// entered overall score and the weighted average.
	DivergenceThreshold = 10.0
	MinOverallScore     = 0.0
	MaxOverallScore     = 100.0
)

var feedbackBlocklist = regexp.MustCompile(`(?i)\b(stupid|idiot|idiotic|garbage|trash|sucks|useless|pathetic|worthless)\b`)

// ValidateCriterionScore checks one score against its criterion. The range
// is inclusive on both ends.
func ValidateCriterionScore(score float64, c Criterion) verdict.Verdict {
	result := verdict.New()
	label := c.label()
	if math.IsNaN(score) || math.IsInf(score, 0) {
		result.AddError(apperrors.CodeScoreNotNumber, "", "Score for "+label+" must be a number",
			map[string]string{"Criterion": label})
		return result
	}
	if score < c.MinScore || score > c.MaxScore {
		result.AddError(apperrors.CodeScoreOutOfRange, "",
			"Score for "+label+" must be between "+formatNumber(c.MinScore)+" and "+formatNumber(c.MaxScore),
			map[string]string{"Criterion": label, "Min": formatNumber(c.MinScore), "Max": formatNumber(c.MaxScore)})
		return result
	}
	scaled := score * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		result.AddWarning(apperrors.CodeScorePrecision, "", "Score for "+label+" has more than 2 decimal places",
			map[string]string{"Criterion": label})
	}
	if span := c.MaxScore - c.MinScore; span > 0 {
		normalized := (score - c.MinScore) / span
		if normalized <= ExtremeFraction || normalized >= 1-ExtremeFraction {
			result.AddWarning(apperrors.CodeScoreExtreme, "", "Score for "+label+" is at the extreme of the range",
				map[string]string{"Criterion": label})
		}
	}
	return result
}

// ValidateJudgeScore checks a full evaluation. Required criteria come from
// requiredIDs and from criteria flagged as required. Scores for unknown
// criteria only warn.
func ValidateJudgeScore(score JudgeScore, criteria []Criterion, requiredIDs []string) verdict.Verdict {
	result := verdict.New()
	byID := make(map[string]Criterion, len(criteria))
	for _, criterion := range criteria {
		byID[criterion.ID] = criterion
	}

	for _, id := range requiredCriteria(criteria, requiredIDs) {
		if _, ok := score.Scores[id]; ok {
			continue
		}
		label := id
		if criterion, ok := byID[id]; ok {
			label = criterion.label()
		}
		result.AddError(apperrors.CodeScoreRequiredMissing, "scores."+id, "Score for "+label+" is required",
			map[string]string{"Criterion": label})
	}

	ids := make([]string, 0, len(score.Scores))
	for id := range score.Scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		criterion, ok := byID[id]
		if !ok {
			result.AddWarning(apperrors.CodeScoreUnknownCriterion, "scores."+id, "Unknown criterion "+id+" will be ignored",
				map[string]string{"Criterion": id})
			continue
		}
		result.Merge(ValidateCriterionScore(float64(score.Scores[id]), criterion), "scores."+id)
	}

	if utf8.RuneCountInString(score.Feedback) > MaxFeedbackLength {
		result.AddError(apperrors.CodeFeedbackTooLong, "feedback",
			"Feedback must be at most "+strconv.Itoa(MaxFeedbackLength)+" characters",
			map[string]string{"Max": strconv.Itoa(MaxFeedbackLength)})
	}
	if feedbackBlocklist.MatchString(score.Feedback) {
		result.AddWarning(apperrors.CodeFeedbackFlagged, "feedback", "Feedback contains language that may be inappropriate", nil)
	}

	result.Merge(ValidateOverallScore(score, criteria), "")
	return result
}

// WeightedScore returns the weight-normalized average of scores on a 0-100
// scale. Each score is normalized to its criterion range before weighting.
// Criteria without a usable score or weight are skipped; the result is false
// when nothing could be counted.
func WeightedScore(scores map[string]Score, criteria []Criterion) (float64, bool) {
	var weighted, totalWeight float64
	for _, criterion := range criteria {
		value, ok := scores[criterion.ID]
		if !ok || !value.Finite() {
			continue
		}
		span := criterion.MaxScore - criterion.MinScore
		if span <= 0 || criterion.Weight <= 0 {
			continue
		}
		normalized := (float64(value) - criterion.MinScore) / span
		weighted += normalized * criterion.Weight
		totalWeight += criterion.Weight
	}
	if totalWeight == 0 {
		return 0, false
	}
	return weighted / totalWeight * 100, true
}

// ValidateOverallScore checks an entered overall score. Divergence from the
// weighted average only warns, so a judge can still override it.
func ValidateOverallScore(score JudgeScore, criteria []Criterion) verdict.Verdict {
	result := verdict.New()
	if score.OverallScore == nil {
		return result
	}
	overall := float64(*score.OverallScore)
	if !score.OverallScore.Finite() {
		result.AddError(apperrors.CodeScoreNotNumber, "overall_score", "Score for overall must be a number",
			map[string]string{"Criterion": "overall"})
		return result
	}
	if overall < MinOverallScore || overall > MaxOverallScore {
		result.AddError(apperrors.CodeOverallOutOfRange, "overall_score",
			"Overall score must be between "+formatNumber(MinOverallScore)+" and "+formatNumber(MaxOverallScore),
			map[string]string{"Min": formatNumber(MinOverallScore), "Max": formatNumber(MaxOverallScore)})
		return result
	}
	computed, ok := WeightedScore(score.Scores, criteria)
	if !ok || math.Abs(overall-computed) <= DivergenceThreshold {
		return result
	}
	computedText := strconv.FormatFloat(computed, 'f', 2, 64)
	result.AddWarning(apperrors.CodeOverallDivergence, "overall_score",
		"Overall score "+formatNumber(overall)+" differs from the weighted average "+computedText+
			" by more than "+formatNumber(DivergenceThreshold)+" points",
		map[string]string{
			"Overall":   formatNumber(overall),
			"Computed":  computedText,
			"Threshold": formatNumber(DivergenceThreshold),
		})
	return result
}

// ValidateBatch checks a batch of evaluations. Each item is validated on
// its own and reported under an items[i] prefix.
func ValidateBatch(items []JudgeScore, criteria []Criterion, requiredIDs []string) verdict.Verdict {
	result := verdict.New()
	if len(items) == 0 {
		result.AddError(apperrors.CodeBatchEmpty, "items", "Batch must contain at least one score", nil)
		return result
	}
	if len(items) > MaxBatchSize {
		result.AddError(apperrors.CodeBatchTooLarge, "items",
			"Batch cannot contain more than "+strconv.Itoa(MaxBatchSize)+" scores",
			map[string]string{"Max": strconv.Itoa(MaxBatchSize)})
		return result
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		prefix := "items[" + strconv.Itoa(i) + "]"
		switch {
		case item.SubmissionID == "":
			result.AddError(apperrors.CodeBatchMissingSubmission, prefix+".submission_id",
				"Each batch item must reference a submission", nil)
		case seen[item.SubmissionID]:
			result.AddError(apperrors.CodeBatchDuplicate, prefix+".submission_id",
				"Submission "+item.SubmissionID+" appears more than once in the batch",
				map[string]string{"SubmissionID": item.SubmissionID})
		default:
			seen[item.SubmissionID] = true
		}
		result.Merge(ValidateJudgeScore(item, criteria, requiredIDs), prefix)
	}
	return result
}

// ValidateCriteria checks an event's scoring criteria.
func ValidateCriteria(criteria []Criterion) verdict.Verdict {
	result := verdict.New()
	if len(criteria) == 0 {
		result.AddError(apperrors.CodeCriteriaEmpty, "criteria", "At least one scoring criterion is required", nil)
		return result
	}
	seen := make(map[string]bool, len(criteria))
	for i, criterion := range criteria {
		prefix := "criteria[" + strconv.Itoa(i) + "]"
		label := criterion.label()
		meta := map[string]string{"Criterion": label}
		if seen[criterion.ID] {
			result.AddError(apperrors.CodeCriterionDuplicate, prefix+".id", "Criterion "+label+" is defined more than once", meta)
		}
		seen[criterion.ID] = true
		if !(criterion.MinScore < criterion.MaxScore) {
			result.AddError(apperrors.CodeCriterionInvalidRange, prefix+".max_score",
				"Criterion "+label+" must have a minimum below its maximum", meta)
		}
		if !(criterion.Weight > 0) || math.IsInf(criterion.Weight, 0) {
			result.AddError(apperrors.CodeCriterionInvalidWeight, prefix+".weight",
				"Criterion "+label+" must have a positive weight", meta)
		}
	}
	return result
}

func requiredCriteria(criteria []Criterion, requiredIDs []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, criterion := range criteria {
		if criterion.Required && !seen[criterion.ID] {
			seen[criterion.ID] = true
			out = append(out, criterion.ID)
		}
	}
	for _, id := range requiredIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
