package service

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Question is one open-ended prompt presented to the user.
type Question struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// QuestionBank serves open-ended questions from a static YAML data file.
type QuestionBank struct {
	mu        sync.Mutex
	questions []Question
	rng       *rand.Rand
}

type questionFile struct {
	Questions []Question `yaml:"questions"`
}

// defaultQuestions keep the service usable when no question file is
// configured.
var defaultQuestions = []Question{
	{ID: "memory", Text: "Describe a small moment from the past month that stuck with you for no obvious reason."},
	{ID: "ambiguity", Text: "Is it better to be early or late? Answer however you understand the question."},
	{ID: "creativity", Text: "Invent a new use for an everyday object you can see right now."},
	{ID: "emotion", Text: "What was the last thing that genuinely annoyed you, and why?"},
	{ID: "time", Text: "Walk through what you did the last time you had a completely free afternoon."},
}

// NewQuestionBank loads questions from path. An empty path loads the
// built-in defaults.
func NewQuestionBank(path string, seed int64) (*QuestionBank, error) {
	bank := &QuestionBank{
		questions: defaultQuestions,
		rng:       rand.New(rand.NewSource(seed)),
	}

	if path == "" {
		return bank, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode question file: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question file %s contains no questions", path)
	}

	bank.questions = file.Questions
	return bank, nil
}

// Random returns one question.
func (b *QuestionBank) Random() Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.questions[b.rng.Intn(len(b.questions))]
}

// All returns every question in the bank.
func (b *QuestionBank) All() []Question {
	return b.questions
}
