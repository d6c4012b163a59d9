package logger

import (
	"encoding/json"
	"log"
	"strings"
)

type Fields map[string]any

// Fully redacted keys. Account numbers are handled separately so log
// lines stay correlatable by their last four digits.
var redactedKeys = map[string]struct{}{
	"owner":       {},
	"channelkey":  {},
	"channel_key": {},
}

var accountNumberKeys = map[string]struct{}{
	"accountnumber":  {},
	"account_number": {},
}

func Info(message string, fields Fields) {
	log.Printf("INFO %s %s", message, fieldsJSON(fields))
}

func Error(message string, err error, fields Fields) {
	base := Fields{}
	for k, v := range fields {
		base[k] = v
	}
	if err != nil {
		base["error"] = err.Error()
	}

	log.Printf("ERROR %s %s", message, fieldsJSON(base))
}

// SanitizePayload round-trips the payload through JSON and masks
// sensitive fields at any nesting depth.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func fieldsJSON(fields Fields) string {
	if fields == nil {
		fields = Fields{}
	}

	sanitized := SanitizePayload(fields)
	b, err := json.Marshal(sanitized)
	if err != nil {
		return `{}`
	}

	return string(b)
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			normalized := normalizeKey(key)
			if _, ok := redactedKeys[normalized]; ok {
				out[key] = "******"
				continue
			}
			if _, ok := accountNumberKeys[normalized]; ok {
				if s, isString := inner.(string); isString {
					out[key] = maskAccountNumber(s)
					continue
				}
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return "******"
	}
	return "******" + number[len(number)-4:]
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
}
