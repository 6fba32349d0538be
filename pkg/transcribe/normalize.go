package transcribe

import (
	"reflect"
	"strings"

	"github.com/voicenotes/voicenotes-cli/pkg/transcript"
)

// Normalize absorbs a structurally inconsistent engine result and produces
// a canonical Result. The engine may hand back a JSON-decoded map or a
// typed struct; its segments field may be a slice, absent, or malformed.
// Normalize never fails: malformed or missing optional fields collapse to
// an empty, but usable, result. It holds no state, so normalizing the same
// raw value twice yields identical output.
//
// Extraction precedence, first non-empty wins:
//   - full text: the result's own "text" field, else the trimmed non-empty
//     segment texts joined with single spaces;
//   - language: the engine-reported language, else the caller's request.
func Normalize(raw any, requestedLanguage string) *Result {
	view := newFieldView(raw)

	segments := make([]transcript.Segment, 0)
	var textParts []string
	if view != nil {
		for _, rawSeg := range rawSegments(view) {
			seg := normalizeSegment(rawSeg)
			segments = append(segments, seg)
			// Whitespace-only texts are excluded from the fallback join
			// but the segment itself is retained.
			if t := transcript.Text(seg); t != "" {
				textParts = append(textParts, t)
			}
		}
	}

	text := directText(view)
	if text == "" {
		text = strings.Join(textParts, " ")
	}

	language := requestedLanguage
	if view != nil {
		if v, ok := view.Field("language"); ok {
			if s, ok := v.(string); ok && s != "" {
				language = s
			}
		}
	}

	return &Result{
		Text:     text,
		Segments: segments,
		Language: language,
	}
}

// rawSegments extracts the raw segment collection, falling back to an empty
// sequence whenever the field is absent or not a real sequence (a string
// does not count).
func rawSegments(view fieldView) []any {
	v, ok := view.Field("segments")
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.([]any); ok {
		return s
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}

// normalizeSegment keeps map-shaped segments as-is and synthesizes a map
// from best-effort field reads otherwise. A words field is carried over
// only when present and non-empty; its contents are never interpreted.
func normalizeSegment(rawSeg any) transcript.Segment {
	if seg, ok := rawSeg.(map[string]any); ok {
		return seg
	}

	seg := transcript.Segment{
		transcript.KeyText:  "",
		transcript.KeyStart: 0.0,
		transcript.KeyEnd:   0.0,
	}
	view := newFieldView(rawSeg)
	if view == nil {
		return seg
	}

	if v, ok := view.Field("text"); ok {
		if s, ok := v.(string); ok {
			seg[transcript.KeyText] = s
		}
	}
	if v, ok := view.Field("start"); ok {
		seg[transcript.KeyStart] = toFloat(v)
	}
	if v, ok := view.Field("end"); ok {
		seg[transcript.KeyEnd] = toFloat(v)
	}
	if v, ok := view.Field("words"); ok && hasElements(v) {
		seg[transcript.KeyWords] = v
	}
	return seg
}

// directText reads the result's whole-text field when it is a non-blank string.
func directText(view fieldView) string {
	if view == nil {
		return ""
	}
	v, ok := view.Field("text")
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// toFloat coerces the numeric types timestamps arrive as.
func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	}
	return 0
}

// hasElements reports whether a carried-over collection is worth keeping.
func hasElements(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}
