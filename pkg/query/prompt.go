package query

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrNoInput is returned when input ends before every field is answered.
var ErrNoInput = errors.New("query: input ended")

// Answer is the parsed reply to one Field.
type Answer struct {
	Field
	Text   string
	Number float64
}

// Prompter asks Fields one line at a time.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Banner greets the user before the questions.
func (p *Prompter) Banner() {
	fmt.Fprintln(p.out, "🔍 歡迎使用台北市房價預測小工具！")
	fmt.Fprintln(p.out, "請依照下列提示輸入房屋資訊，我們來猜猜它值多少錢 💰")
}

// Ask prompts for every field in order. The first malformed number aborts
// the whole query.
func (p *Prompter) Ask(fields []Field) ([]Answer, error) {
	answers := make([]Answer, 0, len(fields))
	for _, f := range fields {
		fmt.Fprintf(p.out, "👉 %s：", f.Label)
		line, err := p.readLine()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Column, err)
		}
		a, err := Parse(f, line)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return p.in.Text(), nil
}

// Parse converts a raw line into an answer for f. Numbers typed with a CJK
// input method (full-width digits, signs and points) are narrowed first; text
// keeps its width so it still matches the dataset's categories.
func Parse(f Field, raw string) (Answer, error) {
	s := Normalize(raw)
	if f.Kind != Text {
		s = width.Narrow.String(s)
	}
	a := Answer{Field: f, Text: s}
	switch f.Kind {
	case Float:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Answer{}, fmt.Errorf("query: %s: %w", f.Column, err)
		}
		a.Number = v
	case Int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return Answer{}, fmt.Errorf("query: %s: %w", f.Column, err)
		}
		a.Number = float64(v)
	}
	return a, nil
}

// Normalize trims surrounding white space, including the ideographic space,
// and folds s to NFC.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
