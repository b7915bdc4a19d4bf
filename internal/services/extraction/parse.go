package extraction

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Outcome tells whether a reply produced fields or the fallback table.
type Outcome string

const (
	OutcomeParsed   Outcome = "parsed"
	OutcomeFallback Outcome = "fallback"
)

// FallbackReason explains why a reply could not be used.
type FallbackReason string

const (
	ReasonNone        FallbackReason = ""
	ReasonMalformed   FallbackReason = "malformed_json"
	ReasonNotAnObject FallbackReason = "not_an_object"
)

// Field is a single key/value pair read from the model's JSON object.
type Field struct {
	Key   string
	Value string
}

// ParsedReply is the result of reading a model reply. Fields is only set
// when Outcome is OutcomeParsed.
type ParsedReply struct {
	Outcome Outcome
	Reason  FallbackReason
	Fields  []Field
}

// Models often wrap JSON in a markdown fence even when told not to.
var codeFence = regexp.MustCompile("(?im)^```(?:json)?\\s*|```\\s*$")

// StripCodeFence removes a leading ```/```json fence and a trailing ```
// fence, case-insensitively, and trims surrounding whitespace.
func StripCodeFence(reply string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(reply), ""))
}

// ParseReply reads a model reply as a flat JSON object. Anything that is not
// a JSON object after fence stripping yields OutcomeFallback.
func ParseReply(reply string) ParsedReply {
	cleaned := StripCodeFence(reply)
	if !gjson.Valid(cleaned) {
		return ParsedReply{Outcome: OutcomeFallback, Reason: ReasonMalformed}
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return ParsedReply{Outcome: OutcomeFallback, Reason: ReasonNotAnObject}
	}

	fields := make([]Field, 0, len(KnownMeasures))
	index := make(map[string]int)
	doc.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		v := fieldValue(value)
		// A repeated key keeps its first position and takes the last value.
		if i, ok := index[k]; ok {
			fields[i].Value = v
			return true
		}
		index[k] = len(fields)
		fields = append(fields, Field{Key: k, Value: v})
		return true
	})

	return ParsedReply{Outcome: OutcomeParsed, Fields: fields}
}

func fieldValue(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.JSON:
		return v.Raw
	default:
		return v.String()
	}
}
