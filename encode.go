package stocktracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// this file contains code to encode and decode holdings in a human readable json format:
//
//	[
//	  {
//	    "symbol": "AAPL",
//	    "shares": 3,
//	    "price": 175.25
//	  }
//	]
//
// "price" is the cost basis per share.

var errNotAList = errors.New("content is not a json list")

// DecodeHoldings reads holdings from r.
//
// Decoding is tolerant: every entry goes through [Normalize], and entries for
// the same symbol are merged. When the content cannot be parsed the result is
// an empty, usable set of holdings together with a *StorageError.
func DecodeHoldings(r io.Reader, currency string) (*Holdings, error) {
	holdings := NewHoldings(currency)

	content, err := io.ReadAll(r)
	if err != nil {
		return holdings, &StorageError{Err: err}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return holdings, nil
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return holdings, &StorageError{Err: fmt.Errorf("format error: %w", err)}
	}
	jlist, ok := jobj.([]any)
	if !ok {
		return holdings, &StorageError{Err: errNotAList}
	}

	for i, jrow := range jlist {
		raw, ok := jrow.(map[string]any)
		if !ok {
			log.Warn().Int("entry", i).Msg("ignoring holding entry that is not a json object")
			continue
		}
		holdings.put(Normalize(raw, currency))
	}
	return holdings, nil
}

// EncodeHoldings writes holdings to w, indented, in insertion order.
func EncodeHoldings(w io.Writer, holdings *Holdings) error {
	content, err := json.MarshalIndent(holdings.All(), "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')
	_, err = w.Write(content)
	return err
}
