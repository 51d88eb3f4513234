package chart

// Loose-JSON accessors. The payloads were written by several generations of
// the mobile app, so every access supplies a neutral default inline instead
// of branching on key presence at the call site.

func childMap(m map[string]interface{}, key string) map[string]interface{} {
	v, _ := m[key].(map[string]interface{})
	return v
}

func str(m map[string]interface{}, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func boolVal(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func num(m map[string]interface{}, key string, def float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

// strList converts a JSON array to its string elements, dropping anything
// that is not a string.
func strList(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// strSet converts a JSON array of strings into a membership set.
func strSet(m map[string]interface{}, key string) map[string]bool {
	ids := strList(m, key)
	if len(ids) == 0 {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// stringValues flattens a JSON object into its string-valued entries.
func stringValues(m map[string]interface{}) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// numberValues flattens a JSON object into its number-valued entries.
func numberValues(m map[string]interface{}) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}
