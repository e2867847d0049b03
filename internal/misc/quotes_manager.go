package misc

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	log "github.com/sirupsen/logrus"
)

//go:embed quotes.csv
var embeddedQuotes string

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type QuotesManager struct {
	Quotes        []*Quote
	AuthorsQuotes map[string][]*Quote
	GenresQuotes  map[string][]*Quote
}

// NewEmbeddedQuoteManager loads the fitness quotes shipped with the binary.
func NewEmbeddedQuoteManager() (*QuotesManager, error) {
	return NewQuoteManager(csv.NewReader(strings.NewReader(embeddedQuotes)))
}

func NewQuoteManager(quotesCsvReader *csv.Reader) (*QuotesManager, error) {
	qm := &QuotesManager{
		AuthorsQuotes: make(map[string][]*Quote),
		GenresQuotes:  make(map[string][]*Quote),
	}

	// QUOTE;AUTHOR;GENRE
	quotesCsvReader.Comma = ';'
	quotesCsvReader.FieldsPerRecord = 3
	for {
		record, err := quotesCsvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read quote: %w", err)
		}

		quote := &Quote{
			Text:   strings.TrimSpace(record[0]),
			Author: strings.TrimSpace(record[1]),
			Genre:  strings.TrimSpace(record[2]),
		}
		qm.Quotes = append(qm.Quotes, quote)
		qm.AuthorsQuotes[quote.Author] = append(qm.AuthorsQuotes[quote.Author], quote)
		qm.GenresQuotes[quote.Genre] = append(qm.GenresQuotes[quote.Genre], quote)
	}
	if len(qm.Quotes) == 0 {
		return nil, errors.New("no quotes found")
	}

	log.Debugf("quotes CSV read %d quotes", len(qm.Quotes))

	return qm, nil
}

func (qm *QuotesManager) RandomQuote() *Quote {
	return qm.Quotes[rand.IntN(len(qm.Quotes))]
}

// RandomQuoteOf picks from the genre; an unknown genre falls back to any quote.
func (qm *QuotesManager) RandomQuoteOf(genre string) *Quote {
	quotes := qm.GenresQuotes[strings.ToLower(genre)]
	if len(quotes) == 0 {
		return qm.RandomQuote()
	}
	return quotes[rand.IntN(len(quotes))]
}
