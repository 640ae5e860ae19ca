package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tartampluch/go-eventboard/internal/config"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(js)

	return nil
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError), errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New(config.ErrBodyMalformed)

		case errors.As(err, &unmarshalTypeError):
			return fmt.Errorf(config.ErrBodyType, unmarshalTypeError.Field)

		case errors.Is(err, io.EOF):
			return errors.New(config.ErrBodyEmpty)

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf(config.ErrBodyUnknownKey, strings.TrimPrefix(err.Error(), "json: unknown field "))

		case errors.As(err, &maxBytesError):
			return fmt.Errorf(config.ErrBodyTooLarge, maxBytesError.Limit)

		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New(config.ErrBodyMultiple)
	}

	return nil
}

// readPage parses the page query parameter. A missing value is page 0.
func readPage(r *http.Request) (int, error) {
	v := r.URL.Query().Get(config.QueryParamPage)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(config.ErrPageIndex)
	}
	return n, nil
}
