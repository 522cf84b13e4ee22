package interview

import "errors"

const (
	FallbackQuestion = "I am having trouble coming up with the next question. Could you try responding again?"
	FallbackContext  = "Interview context lost."
	FallbackFeedback = "No feedback was provided for this response."
)

// MaxContextChars bounds the interview context echoed between turns.
const MaxContextChars = 12000

const (
	maxJobRoleChars  = 200
	maxLevelChars    = 100
	maxResponseChars = 8000
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrProvider     = errors.New("interviewer unavailable")
)

// TurnInput is everything a turn needs. The server keeps no session state.
type TurnInput struct {
	JobRole         string `json:"jobRole"`
	ExperienceLevel string `json:"experienceLevel"`
	PreviousContext string `json:"interviewContext,omitempty"`
	UserResponse    string `json:"userResponse,omitempty"`
}

// Opening reports whether this is the first turn of an interview. A response
// sent without a context is ignored.
func (in TurnInput) Opening() bool {
	return in.PreviousContext == ""
}

// TurnOutput is the interviewer's reply for one turn.
type TurnOutput struct {
	Question         string `json:"question"`
	Feedback         string `json:"feedback,omitempty"`
	InterviewContext string `json:"interviewContext"`
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry. Feedback rides on the assistant message
// that follows the answer it judges.
type Message struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Feedback string `json:"feedback,omitempty"`
}

// Transcript is the conversation as the client keeps it. The server never stores one.
type Transcript []Message

// AddAnswer records the candidate's reply.
func (t *Transcript) AddAnswer(text string) {
	*t = append(*t, Message{Role: RoleUser, Content: text})
}

// AddTurn records the interviewer's question and any feedback.
func (t *Transcript) AddTurn(out TurnOutput) {
	*t = append(*t, Message{Role: RoleAssistant, Content: out.Question, Feedback: out.Feedback})
}
