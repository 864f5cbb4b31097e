package confstore

// DeepMerge merges src into dst and returns a new map; neither input is
// mutated. Nested maps merge key-by-key. Every non-map value — scalars AND
// lists — overwrites wholesale. Lists are replaced, never appended.
func DeepMerge(dst, src Document) Document {
	merged := make(Document, len(dst)+len(src))
	for k, v := range dst {
		merged[k] = v
	}

	for k, v := range src {
		srcMap, srcIsMap := toDocument(v)
		dstMap, dstIsMap := toDocument(merged[k])
		if srcIsMap && dstIsMap {
			merged[k] = DeepMerge(dstMap, srcMap)
			continue
		}
		merged[k] = v
	}
	return merged
}

// toDocument normalizes the map shapes the YAML decoder can produce.
func toDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[any]any:
		doc := make(Document, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			doc[key] = val
		}
		return doc, true
	default:
		return nil, false
	}
}
