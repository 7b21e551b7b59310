package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Supported request body media types.
const (
	mediaJSON      = "application/json"
	mediaForm      = "application/x-www-form-urlencoded"
	mediaMultipart = "multipart/form-data"
)

const maxMultipartMemory = 1 << 20

// formPayload is a request body that can also be filled from form values.
type formPayload interface {
	fromForm(v url.Values)
}

// decodeBody fills dst from a JSON, url-encoded or multipart body. Any other content
// type, and an empty body, leave dst zero so field validation reports what is
// missing.
func decodeBody(r *http.Request, dst formPayload) error {
	mediaType := mediaJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return err
		}
		mediaType = mt
	}

	switch mediaType {
	case mediaForm:
		if err := r.ParseForm(); err != nil {
			return err
		}
		dst.fromForm(r.PostForm)
	case mediaMultipart:
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return err
		}
		dst.fromForm(r.PostForm)
	case mediaJSON:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}

// flexString holds a JSON string or the literal text of any other JSON
// scalar, so numeric fields can arrive either as 30 or "30".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

// createUserRequest is the body of POST /api/users.
type createUserRequest struct {
	Username string `json:"username"`
}

func (c *createUserRequest) fromForm(v url.Values) {
	c.Username = v.Get("username")
}

// addExerciseRequest is the body of POST /api/users/{_id}/exercises.
type addExerciseRequest struct {
	Description string     `json:"description"`
	Duration    flexString `json:"duration"`
	Date        string     `json:"date"`
}

func (a *addExerciseRequest) fromForm(v url.Values) {
	a.Description = v.Get("description")
	a.Duration = flexString(v.Get("duration"))
	a.Date = v.Get("date")
}
