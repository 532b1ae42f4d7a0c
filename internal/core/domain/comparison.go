package domain

// Sentence is the minimal comparable unit produced by segmentation.
// IDs are assigned as a running counter in reading order and never
// change afterwards.
type Sentence struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
	Length    int    `json:"length"`
	IsSplit   bool   `json:"is_split"`
}

// Span is a raw sentence boundary as reported by the segmentation
// sidecar, before any post-processing.
type Span struct {
	Text      string `json:"text"`
	StartChar int    `json:"start"`
	EndChar   int    `json:"end"`
}

// Match pairs one sentence from each document. Index1/Index2 are
// positions in the respective sentence sequences; within one
// comparison each index appears in at most one Match.
type Match struct {
	Sentence1       Sentence `json:"sentence1"`
	Sentence2       Sentence `json:"sentence2"`
	Similarity      float64  `json:"similarity"`
	Index1          int      `json:"index1"`
	Index2          int      `json:"index2"`
	ExactMatch      bool     `json:"exact_match"`
	NormalizedMatch bool     `json:"normalized_match"`
}

// MatchResult partitions both documents: every sentence index is
// either in a Match or in the corresponding only-in list.
type MatchResult struct {
	Matches    []Match    `json:"matches"`
	OnlyInDoc1 []Sentence `json:"only_in_doc1"`
	OnlyInDoc2 []Sentence `json:"only_in_doc2"`
	MatchScore float64    `json:"match_score"`
}

type DifferenceType string

const (
	DiffMismatch      DifferenceType = "mismatch"
	DiffMissingInDoc1 DifferenceType = "missing_in_doc1"
	DiffMissingInDoc2 DifferenceType = "missing_in_doc2"
)

type Classification string

const (
	ClassExactMatch      Classification = "exact_match"
	ClassMinorDifference Classification = "minor_difference"
	ClassRewording       Classification = "rewording"
	ClassSignificant     Classification = "significant"
	ClassAddition        Classification = "addition"
)

type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Difference is one user-facing divergence. Positions are 1-indexed;
// nil means the sentence has no counterpart in that document.
type Difference struct {
	Type           DifferenceType `json:"type"`
	Classification Classification `json:"classification"`
	Severity       Severity       `json:"severity"`
	Position1      *int           `json:"position1"`
	Position2      *int           `json:"position2"`
	Text1          *string        `json:"text1"`
	Text2          *string        `json:"text2"`
	Similarity     float64        `json:"similarity"`
	Suggestions    []string       `json:"suggestions"`
}

// Reordering flags a matched pair whose document positions drifted
// beyond tolerance, suggesting moved rather than edited content.
type Reordering struct {
	Text             string `json:"text"`
	ExpectedPosition int    `json:"expected_position"`
	ActualPosition   int    `json:"actual_position"`
	Displacement     int    `json:"displacement"`
}

type Summary struct {
	OverallMatch           float64 `json:"overall_match"`
	TotalSentencesDoc1     int     `json:"total_sentences_doc1"`
	TotalSentencesDoc2     int     `json:"total_sentences_doc2"`
	MatchedSentences       int     `json:"matched_sentences"`
	ExactMatches           int     `json:"exact_matches"`
	MinorDifferences       int     `json:"minor_differences"`
	Rewordings             int     `json:"rewordings"`
	SignificantDifferences int     `json:"significant_differences"`
	MissingInDoc1          int     `json:"missing_in_doc1"`
	MissingInDoc2          int     `json:"missing_in_doc2"`
	ReorderingsDetected    int     `json:"reorderings_detected"`
	AvgSimilarity          float64 `json:"avg_similarity"`
}

type Verdict struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Color      string `json:"color"`
	Confidence string `json:"confidence"`
}

type SentenceStats struct {
	TotalSentences int     `json:"total_sentences"`
	AvgLength      float64 `json:"avg_length"`
	MinLength      int     `json:"min_length"`
	MaxLength      int     `json:"max_length"`
	TotalChars     int     `json:"total_chars"`
}

type QualityAnalysis struct {
	TotalMatches           int           `json:"total_matches"`
	ExactMatches           int           `json:"exact_matches"`
	MinorDifferences       int           `json:"minor_differences"`
	Rewordings             int           `json:"rewordings"`
	SignificantDifferences int           `json:"significant_differences"`
	AvgSimilarity          float64       `json:"avg_similarity"`
	Doc1Stats              SentenceStats `json:"doc1_stats"`
	Doc2Stats              SentenceStats `json:"doc2_stats"`
}

// Report is the full comparison result, shaped for direct JSON
// serialization. Differences are sorted ascending by position.
type Report struct {
	Summary         Summary         `json:"summary"`
	Verdict         Verdict         `json:"verdict"`
	Differences     []Difference    `json:"differences"`
	Reorderings     []Reordering    `json:"reorderings"`
	Recommendations []string        `json:"recommendations"`
	QualityAnalysis QualityAnalysis `json:"quality_analysis"`
	ProcessingTime  float64         `json:"processing_time,omitempty"`
	File1Name       string          `json:"file1_name,omitempty"`
	File2Name       string          `json:"file2_name,omitempty"`
}
