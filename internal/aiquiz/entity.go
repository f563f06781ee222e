package aiquiz

// GeneratedQuestion is a question that passed every check. Idx is its position
// in the model output, never a value the model supplied.
type GeneratedQuestion struct {
	Idx         int      `json:"idx"`
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type Result struct {
	Title     string              `json:"title"`
	Language  string              `json:"language"`
	Questions []GeneratedQuestion `json:"questions"`
	// Calls is the number of model round trips it took, repair included.
	Calls int `json:"-"`
}

// payload mirrors the JSON the model is asked for. Unknown fields such as
// idx or position are dropped on decode.
type payload struct {
	Title     string        `json:"title"`
	Language  string        `json:"language"`
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}
