package remoteok

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Job is one posting as returned by the RemoteOK API.
type Job struct {
	ID          string
	Position    string
	Company     string
	Location    string
	Description string
	Tags        []string
	SalaryRange string
	SalaryMin   int64
	Remote      bool
	Epoch       int64
}

// The API is loose about types: id shows up both as a number and as a
// string, remote as a bool or 0/1, epoch occasionally quoted. Decode
// through raw messages and normalize so the rest of the pipeline only
// ever sees one shape.
func (j *Job) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Position    string          `json:"position"`
		Company     string          `json:"company"`
		Location    string          `json:"location"`
		Description string          `json:"description"`
		Tags        []string        `json:"tags"`
		SalaryRange json.RawMessage `json:"salary_range"`
		SalaryMin   json.RawMessage `json:"salary_min"`
		Remote      json.RawMessage `json:"remote"`
		Epoch       json.RawMessage `json:"epoch"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	j.ID = rawString(raw.ID)
	j.Position = raw.Position
	j.Company = raw.Company
	j.Location = raw.Location
	j.Description = raw.Description
	j.Tags = raw.Tags
	j.SalaryRange = rawString(raw.SalaryRange)
	j.SalaryMin = rawInt(raw.SalaryMin)
	j.Remote = rawBool(raw.Remote)
	j.Epoch = rawInt(raw.Epoch)
	return nil
}

// rawString renders a JSON scalar as a plain string. Numbers keep their
// integer form ("1093763", not "1.093763e+06").
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strings.Trim(string(raw), `"`)
}

func rawInt(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int64(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(v)
		}
	}
	return 0
}

func rawBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "true" || s == "1"
	}
	return false
}
