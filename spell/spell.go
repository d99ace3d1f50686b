// Package spell is a dictionary-backed spell checker built on package hashtable.
//
// A Dictionary is loaded from a word list (one word per line). Process copies
// text from a reader to a writer and marks every word that fails Check by
// appending " [sic]" right after it. A word is a maximal run of ASCII letters;
// everything else (digits, punctuation, whitespace, non-ASCII bytes) is copied
// through unchanged.
//
// Check accepts a word when the dictionary holds
//   - the word exactly,
//   - the word with every letter after the first lowercased, or
//   - the word fully lowercased.
//
// So with "hello" and "Paris" loaded, "hello", "Hello", "HELLO" and "hELLO"
// pass, "PARIS" passes, and "paris" is marked.
package spell

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/katalvlaran/numc/hashtable"
)

// DefaultSize is the bucket count of a dictionary created without WithSize.
const DefaultSize = 2255

// Marker is appended after every misspelled word.
const Marker = " [sic]"

// ErrNilDictionary indicates a method call on a nil *Dictionary.
var ErrNilDictionary = errors.New("spell: nil dictionary")

// StringHash hashes a word with 32-bit FNV-1a.
func StringHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))

	return h.Sum32()
}

// StringEquals reports whether two words are byte-for-byte identical.
func StringEquals(a, b string) bool { return a == b }

// Option configures a Dictionary.
type Option func(*options)

type options struct {
	size int
}

// WithSize sets the bucket count of the underlying table.
// Panics if n <= 0.
func WithSize(n int) Option {
	if n <= 0 {
		panic("spell: WithSize: n must be > 0")
	}

	return func(o *options) { o.size = n }
}

// Dictionary is a set of correctly spelled words.
type Dictionary struct {
	words *hashtable.Table[string, string]
}

// NewDictionary returns an empty dictionary.
func NewDictionary(opts ...Option) (*Dictionary, error) {
	o := options{size: DefaultSize}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	t, err := hashtable.New[string, string](o.size, StringHash, StringEquals)
	if err != nil {
		return nil, fmt.Errorf("spell: NewDictionary: %w", err)
	}

	return &Dictionary{words: t}, nil
}

// Add inserts a single word.
func (d *Dictionary) Add(word string) error {
	if d == nil {
		return ErrNilDictionary
	}
	d.words.Insert(word, word)

	return nil
}

// Load reads one word per line from r. Trailing "\r" and surrounding blanks
// are trimmed; empty lines are skipped. Lines of any length are accepted.
// It returns the number of words added.
func (d *Dictionary) Load(r io.Reader) (int, error) {
	if d == nil {
		return 0, ErrNilDictionary
	}
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if word := strings.TrimSpace(line); word != "" {
			d.words.Insert(word, word)
			n++
		}
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("spell: Load: %w", err)
		}
	}
}

// Contains reports whether word is in the dictionary exactly as given.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.words.Lookup(word)

	return ok
}

// Len returns the number of loaded words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}

	return d.words.Len()
}

// Check reports whether word is spelled correctly (see the package doc for
// the three accepted variants).
func (d *Dictionary) Check(word string) bool {
	if d.Contains(word) {
		return true
	}
	if word == "" {
		return false
	}
	if d.Contains(word[:1] + lowerASCII(word[1:])) {
		return true
	}

	return d.Contains(lowerASCII(word))
}

// Process copies r to w, appending Marker after each word that fails Check.
func (d *Dictionary) Process(r io.Reader, w io.Writer) error {
	if d == nil {
		return ErrNilDictionary
	}
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	var word []byte

	flush := func() error {
		if len(word) == 0 {
			return nil
		}
		if _, err := bw.Write(word); err != nil {
			return err
		}
		if !d.Check(string(word)) {
			if _, err := bw.WriteString(Marker); err != nil {
				return err
			}
		}
		word = word[:0]

		return nil
	}

	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("spell: Process: %w", err)
		}
		if isLetter(c) {
			word = append(word, c)
			continue
		}
		if err = flush(); err != nil {
			return fmt.Errorf("spell: Process: %w", err)
		}
		if err = bw.WriteByte(c); err != nil {
			return fmt.Errorf("spell: Process: %w", err)
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("spell: Process: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("spell: Process: %w", err)
	}

	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// lowerASCII lowercases ASCII letters only; words never hold other bytes.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}

	return string(b)
}
