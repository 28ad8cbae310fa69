package erp

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// Holoo wraps list payloads in whichever entity name the endpoint fancies.
// These are the wrapper keys seen in the wild.
var listWrapperKeys = []string{"Customer", "product", "seller", "invoice", "preinvoice", "Address"}

// DecodeList normalizes the zoo of Holoo response shapes into a flat record
// list. Recognized shapes, in priority order:
//
//  1. {"status": ..., "data": [...]}
//  2. [...]
//  3. {"Customer": [...]} (or another entity-named wrapper)
//  4. {"data": {"Customer": [...]}}
//  5. {"data": [...]}
//  6. {...} single record carrying an ErpCode
//
// Anything else decodes to an empty list with a warning, never an error:
// an unrecognized payload must not take the dashboard down.
func DecodeList[T any](data []byte, logger *zap.Logger) []T {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}
	}

	if trimmed[0] == '[' {
		return decodeArray[T](trimmed, logger)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		logger.Warn("unrecognized response payload, treating as empty",
			zap.Error(err),
			zap.Int("bytes", len(trimmed)))
		return []T{}
	}

	// a top-level entity wrapper outranks a "data" key when both appear
	for _, key := range listWrapperKeys {
		if list, ok := envelope[key]; ok {
			return decodeArray[T](bytes.TrimSpace(list), logger)
		}
	}

	if raw, ok := envelope["data"]; ok {
		inner := bytes.TrimSpace(raw)
		switch {
		case len(inner) > 0 && inner[0] == '[':
			return decodeArray[T](inner, logger)
		case len(inner) > 0 && inner[0] == '{':
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(inner, &nested); err == nil {
				for _, key := range listWrapperKeys {
					if list, ok := nested[key]; ok {
						return decodeArray[T](list, logger)
					}
				}
			}
		}
	}

	if _, ok := envelope["ErpCode"]; ok {
		var single T
		if err := json.Unmarshal(trimmed, &single); err == nil {
			return []T{single}
		}
	}

	logger.Warn("unrecognized response shape, treating as empty",
		zap.Strings("keys", mapKeys(envelope)))
	return []T{}
}

func decodeArray[T any](data []byte, logger *zap.Logger) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("response list failed to decode, treating as empty", zap.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func mapKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// DedupeByErpCode drops records repeating an already-seen ErpCode. The first
// occurrence wins; the repeated codes come back so callers can log them.
// Records without an ErpCode pass through untouched.
func DedupeByErpCode[T any](items []T, erpCode func(T) string) ([]T, []string) {
	seen := make(map[string]struct{}, len(items))
	unique := make([]T, 0, len(items))
	var duplicates []string

	for _, item := range items {
		code := erpCode(item)
		if code == "" {
			unique = append(unique, item)
			continue
		}
		if _, dup := seen[code]; dup {
			duplicates = append(duplicates, code)
			continue
		}
		seen[code] = struct{}{}
		unique = append(unique, item)
	}

	return unique, duplicates
}
