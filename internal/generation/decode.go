package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeList decodes a structured response that is expected to be a JSON
// array of T. The remote model's literal output shape is not perfectly
// deterministic even under a schema constraint, so two shapes are
// tolerated rather than treated as errors:
//
//   - the raw array itself: [ ... ]
//   - a wrapper object holding the array under the pluralized list name,
//     e.g. {"flashcards": [ ... ]}
//
// If the wrapper object does not carry the expected field, an empty list
// is returned: "nothing found" is a valid result for search, flashcard,
// and quiz generation, not an error. Anything that is not valid JSON, or
// not one of the two shapes above, yields a *MalformedResponseError that
// retains the raw text for logging.
func DecodeList[T any](feature, listName, raw string) ([]T, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, NewMalformedResponseError(feature, raw, fmt.Errorf("empty response"))
	}

	switch trimmed[0] {
	case '[':
		var list []T
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, NewMalformedResponseError(feature, raw, err)
		}
		return list, nil

	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
			return nil, NewMalformedResponseError(feature, raw, err)
		}

		field, ok := wrapper[listName]
		if !ok {
			// Lenient default: the expected field is absent, so report
			// an empty result rather than failing the call.
			return []T{}, nil
		}

		var list []T
		if err := json.Unmarshal(field, &list); err != nil {
			return nil, NewMalformedResponseError(feature, raw,
				fmt.Errorf("field %q: %w", listName, err))
		}
		return list, nil

	default:
		return nil, NewMalformedResponseError(feature, raw,
			fmt.Errorf("expected a JSON array or wrapper object"))
	}
}

// DecodeObject decodes a structured response into a single value of type
// T. Decoding either fully succeeds or the whole call fails with a
// *MalformedResponseError; a partially valid value is never returned.
func DecodeObject[T any](feature, raw string) (T, error) {
	var value T

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return value, NewMalformedResponseError(feature, raw, fmt.Errorf("empty response"))
	}

	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return value, NewMalformedResponseError(feature, raw, err)
	}

	return value, nil
}
