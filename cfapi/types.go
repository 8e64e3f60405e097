package cfapi

type SubmissionID int64

type Verdict string

const (
	VerdictFailed                  Verdict = "FAILED"
	VerdictOK                      Verdict = "OK"
	VerdictPartial                 Verdict = "PARTIAL"
	VerdictCompilationError        Verdict = "COMPILATION_ERROR"
	VerdictRuntimeError            Verdict = "RUNTIME_ERROR"
	VerdictWrongAnswer             Verdict = "WRONG_ANSWER"
	VerdictPresentationError       Verdict = "PRESENTATION_ERROR"
	VerdictTimeLimitExceeded       Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded     Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictIdlenessLimitExceeded   Verdict = "IDLENESS_LIMIT_EXCEEDED"
	VerdictSecurityViolated        Verdict = "SECURITY_VIOLATED"
	VerdictCrashed                 Verdict = "CRASHED"
	VerdictInputPreparationCrashed Verdict = "INPUT_PREPARATION_CRASHED"
	VerdictChallenged              Verdict = "CHALLENGED"
	VerdictSkipped                 Verdict = "SKIPPED"
	VerdictTesting                 Verdict = "TESTING"
	VerdictRejected                Verdict = "REJECTED"

	// VerdictUndefined is the literal text "undefined". It is compared
	// as a plain string; a missing verdict field decodes to "" instead.
	VerdictUndefined Verdict = "undefined"
)

type Problem struct {
	ContestID int      `json:"contestId,omitempty"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Submission mirrors the Codeforces Submission object. Only the
// fields the watcher and status output need are decoded.
type Submission struct {
	ID                  SubmissionID `json:"id"`
	ContestID           int          `json:"contestId,omitempty"`
	CreationTimeSeconds int64        `json:"creationTimeSeconds"`
	Problem             Problem      `json:"problem"`
	ProgrammingLanguage string       `json:"programmingLanguage"`
	Verdict             Verdict      `json:"verdict"`
	PassedTestCount     int          `json:"passedTestCount"`
	TimeConsumedMillis  int          `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64        `json:"memoryConsumedBytes"`
}

const (
	statusOK     = "OK"
	statusFailed = "FAILED"
)

// envelope is the common wrapper of every API method response.
type envelope[T any] struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
	Result  T      `json:"result"`
}
