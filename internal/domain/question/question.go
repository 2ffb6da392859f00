package question

import "encoding/json"

// Question is the canonical multiple-choice record every downstream component
// works with. CorrectIndex is zero-based and always within Options once a
// record has been through Normalize.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"answer"`
	Explanation  string   `json:"explanation,omitempty"`
}

// RawQuestion mirrors one record of an external chapter JSON file. Two
// encodings are in circulation: options as an array plus a numeric "answer",
// or options as a letter-keyed object plus a letter string "correct_answer".
// Options stays raw so Normalize can probe which shape it got.
type RawQuestion struct {
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	Answer        *int            `json:"answer"`
	CorrectAnswer string          `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
}

// letterOptions is the object-keyed encoding. Pointers distinguish an absent
// key from an empty string.
type letterOptions struct {
	A *string `json:"a"`
	B *string `json:"b"`
	C *string `json:"c"`
	D *string `json:"d"`
}

// Normalize converts a raw record into a canonical Question. It never fails:
// malformed fields fall back to defaults so one bad record cannot abort a
// whole chapter load.
func Normalize(raw RawQuestion) Question {
	q := Question{
		Text:        raw.Question,
		Options:     normalizeOptions(raw.Options),
		Explanation: raw.Explanation,
	}

	// A numeric answer takes priority over a lettered correct_answer.
	switch {
	case raw.Answer != nil:
		q.CorrectIndex = *raw.Answer
	default:
		q.CorrectIndex = letterIndex(raw.CorrectAnswer)
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		q.CorrectIndex = 0
	}
	return q
}

// normalizeOptions accepts either an ordered array of strings or a
// letter-keyed object. Object keys are emitted in fixed a,b,c,d order with
// absent keys skipped.
func normalizeOptions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var seq []string
	if err := json.Unmarshal(raw, &seq); err == nil {
		return seq
	}

	var letters letterOptions
	if err := json.Unmarshal(raw, &letters); err != nil {
		return nil
	}

	var out []string
	for _, opt := range []*string{letters.A, letters.B, letters.C, letters.D} {
		if opt != nil {
			out = append(out, *opt)
		}
	}
	return out
}

// letterIndex maps a letter answer ("a".."d", any case) to its option index.
// Anything unmapped defaults to 0.
func letterIndex(answer string) int {
	if len(answer) != 1 {
		return 0
	}
	switch answer[0] {
	case 'a', 'A':
		return 0
	case 'b', 'B':
		return 1
	case 'c', 'C':
		return 2
	case 'd', 'D':
		return 3
	}
	return 0
}

// ParseChapter decodes a chapter file (a JSON array of raw records in either
// encoding) into canonical questions. Individual records that fail to decode
// cleanly are still normalized from whatever fields did decode; only a body
// that is not a JSON array at all is an error.
func ParseChapter(data []byte) ([]Question, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(records))
	for _, rec := range records {
		var raw RawQuestion
		// Best effort: Unmarshal fills every field it can before reporting
		// a type mismatch, and Normalize defaults the rest.
		_ = json.Unmarshal(rec, &raw)
		questions = append(questions, Normalize(raw))
	}
	return questions, nil
}
