// Package corpus supplies the prose used by the text-heavy document subtypes.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Topic names a group of paragraphs
type Topic string

// Corpus topics
const (
	TopicLetter  Topic = "letter"
	TopicBook    Topic = "book"
	TopicMedical Topic = "medical"
	TopicGeneric Topic = "generic"
)

// Topics lists every topic a corpus must cover
var Topics = []Topic{TopicLetter, TopicBook, TopicMedical, TopicGeneric}

var (
	ErrEmptyTopic    = errors.New("corpus topic has no paragraphs")
	ErrUnknownTopic  = errors.New("unknown corpus topic")
	ErrInvalidCorpus = errors.New("invalid corpus file")
)

// Corpus maps each topic to a pool of paragraphs and carries a few headline pools
type Corpus struct {
	Paragraphs     map[Topic][]string `json:"paragraphs"`
	LetterSubjects []string           `json:"letter_subjects"`
	ChapterTitles  []string           `json:"chapter_titles"`
	Diagnoses      []string           `json:"diagnoses"`
	NoticeTitles   []string           `json:"notice_titles"`
}

// Default returns the built-in corpus
func Default() *Corpus {
	c := &Corpus{
		Paragraphs:     make(map[Topic][]string, len(Topics)),
		LetterSubjects: append([]string(nil), letterSubjects...),
		ChapterTitles:  append([]string(nil), chapterTitles...),
		Diagnoses:      append([]string(nil), diagnoses...),
		NoticeTitles:   append([]string(nil), noticeTitles...),
	}
	c.Paragraphs[TopicLetter] = append([]string(nil), letterParagraphs...)
	c.Paragraphs[TopicBook] = append([]string(nil), bookParagraphs...)
	c.Paragraphs[TopicMedical] = append([]string(nil), medicalParagraphs...)
	c.Paragraphs[TopicGeneric] = append([]string(nil), genericParagraphs...)
	return c
}

// Load reads a JSON corpus from path and merges it over the built-in one.
// An empty path returns the built-in corpus.
func Load(path string) (*Corpus, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var extra Corpus
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
	}
	c.Merge(&extra)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge appends every entry of other to c
func (c *Corpus) Merge(other *Corpus) {
	if other == nil {
		return
	}
	if c.Paragraphs == nil {
		c.Paragraphs = make(map[Topic][]string)
	}
	for topic, paras := range other.Paragraphs {
		c.Paragraphs[topic] = append(c.Paragraphs[topic], nonEmpty(paras)...)
	}
	c.LetterSubjects = append(c.LetterSubjects, nonEmpty(other.LetterSubjects)...)
	c.ChapterTitles = append(c.ChapterTitles, nonEmpty(other.ChapterTitles)...)
	c.Diagnoses = append(c.Diagnoses, nonEmpty(other.Diagnoses)...)
	c.NoticeTitles = append(c.NoticeTitles, nonEmpty(other.NoticeTitles)...)
}

// Validate checks that every topic and headline pool has entries
func (c *Corpus) Validate() error {
	for _, topic := range Topics {
		if len(c.Paragraphs[topic]) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyTopic, topic)
		}
	}
	pools := map[string][]string{
		"letter_subjects": c.LetterSubjects,
		"chapter_titles":  c.ChapterTitles,
		"diagnoses":       c.Diagnoses,
		"notice_titles":   c.NoticeTitles,
	}
	for name, pool := range pools {
		if len(pool) == 0 {
			return fmt.Errorf("%w: %s", ErrInvalidCorpus, name)
		}
	}
	return nil
}

// Topic returns the paragraphs of one topic
func (c *Corpus) Topic(topic Topic) ([]string, error) {
	paras, ok := c.Paragraphs[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	if len(paras) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTopic, topic)
	}
	return paras, nil
}

// Save writes the corpus as indented JSON
func (c *Corpus) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// Stats returns the number of paragraphs per topic
func (c *Corpus) Stats() map[Topic]int {
	out := make(map[Topic]int, len(c.Paragraphs))
	for topic, paras := range c.Paragraphs {
		out[topic] = len(paras)
	}
	return out
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
