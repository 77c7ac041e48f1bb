package protocol

// Messages the client sends.

// Hello opens a session.
type Hello struct {
	V          int    `json:"v"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Input is one sample of the held keys. The server keeps only the most
// recent sample and feeds it to every simulation tick until the next.
type Input struct {
	Thrust bool `json:"thrust,omitempty"`
	Left   bool `json:"left,omitempty"`
	Right  bool `json:"right,omitempty"`
	Fire   bool `json:"fire,omitempty"`
	Pause  bool `json:"pause,omitempty"`
}

// Restart asks for a fresh game after game over.
type Restart struct{}
