// Package bank loads question banks from YAML or JSON files.
package bank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lisquiz/lisquiz/internal/quiz"
)

// Bank is one quiz: a titled, single-variant list of questions.
type Bank struct {
	Format    string       `yaml:"format,omitempty" json:"format,omitempty"`
	ID        string       `yaml:"id,omitempty" json:"id,omitempty"`
	Title     string       `yaml:"title,omitempty" json:"title,omitempty"`
	Variant   quiz.Variant `yaml:"variant,omitempty" json:"variant,omitempty"`
	Boxes     *Boxes       `yaml:"boxes,omitempty" json:"boxes,omitempty"`
	Voice     *Voice       `yaml:"voice,omitempty" json:"voice,omitempty"`
	Items     []Item       `yaml:"questions" json:"questions"`

	// Path is the file the bank was loaded from. Empty for built-in banks.
	Path string `yaml:"-" json:"-"`
}

// Boxes labels the two boxes of a sort bank.
type Boxes struct {
	Left  string `yaml:"left" json:"left"`
	Right string `yaml:"right" json:"right"`
}

// Voice holds bank-wide speech defaults for audio banks.
type Voice struct {
	Name  string  `yaml:"name,omitempty" json:"name,omitempty"`
	Lang  string  `yaml:"lang,omitempty" json:"lang,omitempty"`
	Rate  float64 `yaml:"rate,omitempty" json:"rate,omitempty"`
	Pitch float64 `yaml:"pitch,omitempty" json:"pitch,omitempty"`
}

// Item is one question as written in a bank file.
type Item struct {
	Question    string            `yaml:"question,omitempty" json:"question,omitempty"`
	Options     []Scalar          `yaml:"options" json:"options"`
	Correct     Scalar            `yaml:"correct,omitempty" json:"correct,omitempty"`
	Key         map[string]string `yaml:"key,omitempty" json:"key,omitempty"`
	Explanation string            `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	Image       string            `yaml:"image,omitempty" json:"image,omitempty"`
	Alt         string            `yaml:"alt,omitempty" json:"alt,omitempty"`
	Voice       string            `yaml:"voice,omitempty" json:"voice,omitempty"`
	Lang        string            `yaml:"lang,omitempty" json:"lang,omitempty"`
	Rate        float64           `yaml:"rate,omitempty" json:"rate,omitempty"`
	Pitch       float64           `yaml:"pitch,omitempty" json:"pitch,omitempty"`
}

// Scalar is a string that also accepts numbers and booleans in bank files.
type Scalar string

// UnmarshalYAML keeps the literal text of any scalar node.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

// Extensions lists the file extensions LoadDir picks up.
var Extensions = []string{".yaml", ".yml", ".json"}

// Parse decodes and validates a bank document. JSON documents are
// accepted as YAML.
func Parse(data []byte) (*Bank, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var b Bank
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&b); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse bank: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse bank: %w", err)
	}

	if err := b.normalize(); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadFile reads and parses the bank at path. The bank ID defaults to the
// file name without its extension.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.Path = path
	if b.ID == "" {
		b.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if b.Title == "" {
		b.Title = b.ID
	}
	return b, nil
}

// LoadDir loads every bank file directly inside dir, sorted by file name.
// Files that fail to load are skipped and reported in the joined error.
func LoadDir(dir string) ([]*Bank, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir: %w", err)
	}

	var (
		banks []*Bank
		errs  []error
	)
	for _, e := range entries {
		if e.IsDir() || !hasBankExt(e.Name()) {
			continue
		}
		b, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		banks = append(banks, b)
	}
	sort.SliceStable(banks, func(i, j int) bool { return banks[i].Path < banks[j].Path })
	return banks, errors.Join(errs...)
}

func hasBankExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Find returns the bank with the given ID, or nil.
func Find(banks []*Bank, id string) *Bank {
	for _, b := range banks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (b *Bank) normalize() error {
	if err := checkFormat(b.Format); err != nil {
		return err
	}
	if b.Format == "" {
		b.Format = CurrentFormat
	}
	v, err := quiz.ParseVariant(string(b.Variant))
	if err != nil {
		return &ValidationError{Err: err}
	}
	b.Variant = v
	b.Title = strings.TrimSpace(b.Title)
	for i := range b.Items {
		b.Items[i].Question = PlainText(b.Items[i].Question)
		b.Items[i].Explanation = PlainText(b.Items[i].Explanation)
	}
	return nil
}

// Questions converts the bank items into quiz questions. The result is
// not yet normalized; quiz.NewSession does that.
func (b *Bank) Questions() []quiz.Question {
	qs := make([]quiz.Question, 0, len(b.Items))
	for _, it := range b.Items {
		q := quiz.Question{
			Prompt:      it.Question,
			Options:     make([]string, 0, len(it.Options)),
			Correct:     string(it.Correct),
			Explanation: it.Explanation,
			Image:       it.Image,
			Alt:         it.Alt,
		}
		for _, opt := range it.Options {
			q.Options = append(q.Options, string(opt))
		}
		if len(it.Key) > 0 {
			q.Key = make(map[string]quiz.Side, len(it.Key))
			for word, side := range it.Key {
				q.Key[word] = quiz.ParseSide(side)
			}
			if len(q.Options) == 0 {
				q.Options = keyWords(it.Key)
			}
		}
		if b.Variant == quiz.VariantAudio {
			q.Speech = b.speechCue(it)
		}
		qs = append(qs, q)
	}
	return qs
}

func (b *Bank) speechCue(it Item) *quiz.SpeechCue {
	cue := &quiz.SpeechCue{Text: it.Voice, Lang: it.Lang, Rate: it.Rate, Pitch: it.Pitch}
	if b.Voice != nil {
		if cue.Lang == "" {
			cue.Lang = b.Voice.Lang
		}
		if cue.Rate == 0 {
			cue.Rate = b.Voice.Rate
		}
		if cue.Pitch == 0 {
			cue.Pitch = b.Voice.Pitch
		}
	}
	return cue
}

func keyWords(key map[string]string) []string {
	words := make([]string, 0, len(key))
	for w := range key {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Config returns the session configuration for the bank.
func (b *Bank) Config() quiz.Config {
	cfg := quiz.Config{Variant: b.Variant}
	if b.Boxes != nil {
		cfg.Boxes = quiz.BoxLabels{Left: b.Boxes.Left, Right: b.Boxes.Right}
	}
	if b.Voice != nil {
		cfg.Voice = b.Voice.Name
	}
	return cfg
}

// Repairs returns the indices of questions whose correct answer was
// missing from the options and will be prepended when played.
func (b *Bank) Repairs() []int {
	var idx []int
	for i, q := range b.Questions() {
		if quiz.Repaired(b.Variant, q) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Check runs the playability rules a session applies at start.
func (b *Bank) Check() error {
	return quiz.Validate(b.Variant, quiz.Normalize(b.Variant, b.Questions()))
}

// Marshal encodes the bank as YAML.
func (b *Bank) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	return buf.Bytes(), nil
}
